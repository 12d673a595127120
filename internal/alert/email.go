/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package alert

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/pkg/errors"

	"premonitor/common/dto"
	"premonitor/internal/config"
)

// EmailChannel delivers alerts over SMTP.
type EmailChannel struct {
	lc     logger.LoggingClient
	cfg    config.EmailConfig
	sendFn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailChannel(lc logger.LoggingClient, cfg config.EmailConfig) *EmailChannel {
	return &EmailChannel{lc: lc, cfg: cfg, sendFn: smtp.SendMail}
}

func (c *EmailChannel) Name() string {
	return ChannelEmail
}

func (c *EmailChannel) Send(bundle dto.AlertBundle) error {
	var auth smtp.Auth
	if c.cfg.Username != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.SmtpHost)
	}

	addr := fmt.Sprintf("%s:%d", c.cfg.SmtpHost, c.cfg.SmtpPort)
	msg := c.compose(bundle)

	if err := c.sendFn(addr, auth, c.cfg.From, c.cfg.To, msg); err != nil {
		return errors.Wrapf(err, "email delivery via %s failed", addr)
	}
	c.lc.Debugf("alert %s delivered by email to %d recipients", bundle.CorrelationId, len(c.cfg.To))
	return nil
}

func (c *EmailChannel) compose(bundle dto.AlertBundle) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", c.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(c.cfg.To, ", "))
	fmt.Fprintf(&b, "Subject: [%s] %s alert for %s\r\n", bundle.Severity, "equipment", bundle.EquipmentId)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "%s\r\n\r\n", bundle.Summary)
	for _, ev := range bundle.Events {
		fmt.Fprintf(&b, "- [%s/%s] %s\r\n", ev.Severity, ev.Type, ev.Msg)
	}
	fmt.Fprintf(&b, "\r\nCorrelation: %s\r\n", bundle.CorrelationId)
	return []byte(b.String())
}
