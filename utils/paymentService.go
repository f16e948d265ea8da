package utils

import (
	"chalkboard/config"
	courseModels "chalkboard/models/course"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyPaymentGateway reports a recorded sale to the external payment
// gateway. The Sale row is already committed by the time this runs; the
// gateway is a downstream consumer, not a gate, so failures are surfaced to
// the caller for logging only.
func NotifyPaymentGateway(sale courseModels.Sale) error {
	if config.AppConfig.PaymentApiURL == "" {
		log.Printf("Payment gateway not configured; skipping notification for sale %s", sale.Reference)
		return nil
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PaymentApiKey).
		SetBody(map[string]interface{}{
			"reference":  sale.Reference,
			"student_id": sale.StudentID,
			"course_id":  sale.CourseID,
			"amount":     sale.SalePrice,
			"sold_at":    sale.SaleDate,
		}).
		Post(config.AppConfig.PaymentApiURL)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
