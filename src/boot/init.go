package boot

import (
	"crs/src/common"
	"crs/src/db"
	"crs/src/lib"
	"crs/src/models"
	"crs/src/workers"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Booking{},
		&models.Transaction{},
		&models.Membership{},
		&models.PointHistory{},
		&models.JobTask{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitBroker() {
	go lib.KafkaCreateTopics("booking-activity")
	common.SQSConsumers()
	common.SNSSubscribes()
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}

// RecoverQueuedJobs re-queues pending expiry jobs after a restart. Overdue
// jobs run immediately; the rest are scheduled back at their original time.
func RecoverQueuedJobs() error {
	sched, err := lib.GetScheduler()
	if err != nil {
		return err
	}
	db := db.GetDb()
	ss := db.Session(&gorm.Session{PrepareStmt: true})
	var jobTasks []models.JobTask
	err = ss.
		Model(&models.JobTask{}).
		Where(&models.JobTask{Status: "pending", JobType: "OneTimeJobStartDateTime"}).
		Order("runs_at asc").
		Limit(100).
		Find(&jobTasks).
		Error
	if err != nil {
		log.Printf("Error retrieving jobs: %s\n", err.Error())
		return err
	}
	log.Printf("Found %d pending jobs", len(jobTasks))
	now := time.Now()
	for _, jobTask := range jobTasks {
		if jobTask.RunsAt.Before(now) {
			go workers.OnHoldExpiry(jobTask.BookingCode)
			continue
		}
		code := jobTask.BookingCode
		job, err := sched.NewJob(
			gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(jobTask.RunsAt)),
			gocron.NewTask(func(code string) {
				workers.OnHoldExpiry(code)
			}, code),
		)
		if err != nil {
			log.Printf("Failed to schedule job [%s]. Skipping: %s\n", jobTask.ID.String(), err.Error())
			continue
		}
		log.Printf("Added job to scheduler: name=%s id=%s job=%s\n", jobTask.Name, jobTask.ID.String(), job.ID().String())
	}

	return nil
}
