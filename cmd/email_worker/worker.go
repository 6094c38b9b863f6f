package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/giftlink/pkg/helpers"
	"github.com/oksasatya/giftlink/pkg/mailer"
	mailtpl "github.com/oksasatya/giftlink/pkg/mailer/templates"
)

const sendTimeout = 15 * time.Second

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// outcome tells the consumer loop how to settle a delivery.
type outcome int

const (
	ack     outcome = iota
	drop            // malformed or unrenderable; never retried
	requeue         // transient send failure
)

var errNoContent = errors.New("email job has neither template nor subject with body")

type worker struct {
	sender Sender
	logger *logrus.Logger
}

func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogError(w.logger, "bad email message", err, nil)
		return drop
	}
	subject, text, html, err := render(&job)
	if err != nil {
		helpers.LogError(w.logger, "render email failed", err, logrus.Fields{"template": job.Template, "to": job.To})
		return drop
	}

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := w.sender.Send(c, job.To, subject, text, html); err != nil {
		helpers.LogError(w.logger, "send email failed", err, logrus.Fields{"to": job.To})
		return requeue
	}
	w.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return ack
}

func render(job *mailer.EmailJob) (subject, text, html string, err error) {
	if job.To == "" {
		return "", "", "", errors.New("email job has no recipient")
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", errNoContent
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	helpers.EnsureRecipient(job)
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("template %q: %w", job.Template, err)
	}
	return subject, text, html, nil
}
