package helpers

import (
	"fmt"

	"github.com/oksasatya/giftlink/pkg/mailer"
)

// EnsureRecipient fills the recipient fields templates rely on from job.To.
func EnsureRecipient(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	for _, k := range []string{"Email", "RecipientEmail"} {
		if v, ok := job.Data[k]; !ok || fmt.Sprintf("%v", v) == "" {
			job.Data[k] = job.To
		}
	}
}
