// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mailstream/go-imap-stream/config"
	"github.com/mailstream/go-imap-stream/domain"
	"github.com/mailstream/go-imap-stream/log"
	"github.com/mailstream/go-imap-stream/mailstream"

	"github.com/sirupsen/logrus"
)

func main() {
	log.InitLogging("debug")
	logger := log.Logger(log.LOG_MAIN)

	conf, err := config.ReadConfig("config.toml")
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load config")
	}

	if conf.Loglevel != nil {
		log.SetLogLevel(*conf.Loglevel)
	}

	client, err := mailstream.Connect(conf)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not connect to imap server")
	}
	defer client.Close()

	client.OnMail(func(record *domain.MailRecord) {
		logger.WithFields(logrus.Fields{
			"uid":     record.Uid,
			"from":    record.From,
			"subject": record.Subject,
			"date":    record.Date,
		}).Info("New mail")
	})
	client.OnError(func(err error) {
		logger.WithField("error", err).Error("Mail delivery failed")
	})

	logger.WithField("mailbox", conf.Mailbox).Info("Scanning for unseen mails")
	err = client.GetUnseenMails()
	if err != nil {
		logger.WithField("error", err).Fatal("Could not scan for unseen mails")
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	logger.Info("Shutting down")
}
