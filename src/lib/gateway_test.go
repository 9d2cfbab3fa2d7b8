package lib

import (
	"context"
	"crs/src/types"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayRegistry(t *testing.T) {
	RegisterGateway(&VNPayGateway{tmnCode: "TESTCODE", secret: []byte("secret")})

	g, err := GetGateway("vnpay")
	assert.NoError(t, err)
	assert.Equal(t, "vnpay", g.Name())

	_, err = GetGateway("paypal")
	assert.ErrorIs(t, err, types.ErrUnsupportedGateway)
}

func TestVNPayLinkRoundTrip(t *testing.T) {
	v := &VNPayGateway{
		tmnCode: "TESTCODE",
		secret:  []byte("testsecret"),
		payURL:  "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
	}
	link, err := v.CreatePaymentLink(context.Background(), &PaymentLinkOptions{
		Amount:    1_500_000,
		Currency:  "vnd",
		OrderCode: "BK-ABCDEF123456",
		ClientIP:  "127.0.0.1",
		ReturnURL: "https://example.com/return",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "BK-ABCDEF123456", query.Get("vnp_TxnRef"))
	assert.Equal(t, "150000000", query.Get("vnp_Amount"))
	assert.NotEmpty(t, query.Get("vnp_SecureHash"))

	// A callback carrying the same signed params must verify.
	params := map[string]string{}
	for key, values := range query {
		params[key] = values[0]
	}
	data, err := v.ParseCallback(&CallbackRequest{Params: params})
	require.NoError(t, err)
	assert.Equal(t, "BK-ABCDEF123456", data.OrderCode)
	assert.False(t, data.Success)
}

func TestVNPayCallbackSuccess(t *testing.T) {
	v := &VNPayGateway{tmnCode: "TESTCODE", secret: []byte("testsecret")}
	params := map[string]string{
		"vnp_TxnRef":        "BK-ABCDEF123456",
		"vnp_ResponseCode":  "00",
		"vnp_TransactionNo": "14422574",
		"vnp_Amount":        "150000000",
	}
	params["vnp_SecureHash"] = hashParams(params, v.secret)

	data, err := v.ParseCallback(&CallbackRequest{Params: params})
	require.NoError(t, err)
	assert.True(t, data.Success)
	assert.Equal(t, "BK-ABCDEF123456", data.OrderCode)
	assert.Equal(t, "14422574", data.ReferenceID)
}

func TestVNPayCallbackRejectsTampering(t *testing.T) {
	v := &VNPayGateway{tmnCode: "TESTCODE", secret: []byte("testsecret")}
	params := map[string]string{
		"vnp_TxnRef":       "BK-ABCDEF123456",
		"vnp_ResponseCode": "00",
		"vnp_Amount":       "150000000",
	}
	params["vnp_SecureHash"] = hashParams(params, v.secret)
	params["vnp_Amount"] = "100"

	_, err := v.ParseCallback(&CallbackRequest{Params: params})
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "signature"))

	// Missing signature is rejected too.
	delete(params, "vnp_SecureHash")
	_, err = v.ParseCallback(&CallbackRequest{Params: params})
	assert.Error(t, err)
}
