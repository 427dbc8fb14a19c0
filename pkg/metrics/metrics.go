// Package metrics defines the Prometheus metrics exposed by the portfolio
// backend: contact message persistence and mail delivery outcomes.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MessagesSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_contact_messages_saved_total",
		Help: "Total number of contact messages persisted",
	})
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_mail_send_success_total",
		Help: "Total number of mails sent successfully",
	}, []string{"host"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_mail_send_failure_total",
		Help: "Total number of mail send attempts that failed",
	}, []string{"host"})
)

func init() {
	prometheus.MustRegister(MessagesSaved)
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
}

// Handler exposes the Prometheus scrape endpoint as a gin handler.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
