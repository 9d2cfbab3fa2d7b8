package lib

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const vnpayDateFormat = "20060102150405"

type VNPayGateway struct {
	tmnCode string
	secret  []byte
	payURL  string
}

func NewVNPayGateway() *VNPayGateway {
	payURL := os.Getenv("VNPAY_PAY_URL")
	if payURL == "" {
		payURL = "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"
	}
	return &VNPayGateway{
		tmnCode: os.Getenv("VNPAY_TMN_CODE"),
		secret:  []byte(os.Getenv("VNPAY_HASH_SECRET")),
		payURL:  payURL,
	}
}

func (v *VNPayGateway) Name() string { return "vnpay" }

func (v *VNPayGateway) CreatePaymentLink(ctx context.Context, opts *PaymentLinkOptions) (string, error) {
	now := time.Now().UTC()
	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    v.tmnCode,
		"vnp_Amount":     strconv.FormatInt(opts.Amount*100, 10),
		"vnp_CreateDate": now.Format(vnpayDateFormat),
		"vnp_ExpireDate": now.Add(15 * time.Minute).Format(vnpayDateFormat),
		"vnp_CurrCode":   strings.ToUpper(opts.Currency),
		"vnp_IpAddr":     opts.ClientIP,
		"vnp_Locale":     "vn",
		"vnp_OrderInfo":  opts.Description,
		"vnp_OrderType":  "other",
		"vnp_ReturnUrl":  opts.ReturnURL,
		"vnp_TxnRef":     opts.OrderCode,
	}
	query := signedQuery(params, v.secret)
	return fmt.Sprintf("%s?%s", v.payURL, query), nil
}

func (v *VNPayGateway) ParseCallback(req *CallbackRequest) (*CallbackData, error) {
	params := map[string]string{}
	for k, val := range req.Params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		params[k] = val
	}
	got := req.Params["vnp_SecureHash"]
	want := hashParams(params, v.secret)
	if got == "" || !hmac.Equal([]byte(strings.ToLower(got)), []byte(want)) {
		return nil, errors.New("invalid vnpay signature")
	}
	return &CallbackData{
		Success:     params["vnp_ResponseCode"] == "00",
		OrderCode:   params["vnp_TxnRef"],
		ReferenceID: params["vnp_TransactionNo"],
		RawStatus:   params["vnp_ResponseCode"],
	}, nil
}

// signedQuery encodes params sorted by key and appends the vnp_SecureHash
// computed over the encoded string, matching the provider's checksum scheme.
func signedQuery(params map[string]string, secret []byte) string {
	encoded := encodeSorted(params)
	return fmt.Sprintf("%s&vnp_SecureHash=%s", encoded, hashParams(params, secret))
}

func hashParams(params map[string]string, secret []byte) string {
	mac := hmac.New(sha512.New, secret)
	mac.Write([]byte(encodeSorted(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

func encodeSorted(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", url.QueryEscape(k), url.QueryEscape(params[k])))
	}
	return strings.Join(pairs, "&")
}
