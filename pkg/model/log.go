// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package model

import (
	"io"

	"github.com/sirupsen/logrus"
)

var log logrus.FieldLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// SetLogger replaces the logger used by the model. Passing nil restores the
// default logger, which discards everything.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		log = newDiscardLogger()
		return
	}
	log = l
}

// memberFields returns the structured fields used when logging a member.
func memberFields(m *Member) logrus.Fields {
	return logrus.Fields{
		"member": m.Name,
		"static": m.Static,
		"kind":   m.kind.String(),
	}
}
