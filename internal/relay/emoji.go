package relay

import "strings"

var paymentEmoji = map[string]string{
	"pending":    "hourglass_flowing_sand",
	"authorized": "lock",
	"paid":       "white_check_mark",
	"voided":     "x",
}

var fulfillmentEmoji = map[string]string{
	"unfulfilled": "mailbox_with_no_mail",
	"fulfilled":   "rocket",
}

// PaymentEmoji maps a financial status to its reaction. Empty string means no
// reaction for that status.
func PaymentEmoji(status string) string { return paymentEmoji[status] }

func FulfillmentEmoji(status string) string { return fulfillmentEmoji[status] }

func StockEmoji(status string) string {
	if strings.EqualFold(status, "stock available") {
		return "package"
	}
	return ""
}
