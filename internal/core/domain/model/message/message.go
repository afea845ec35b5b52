// Package message models notification templates and the messages rendered from them.
package message

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// Template is a named subject/body pair written in text/template syntax.
type Template struct {
	name    string
	subject string
	body    string
}

func NewTemplate(name, subject, body string) (Template, error) {
	var errName, errBody error
	if name == "" {
		errName = errs.NewValueIsRequiredError("name")
	}
	if body == "" {
		errBody = errs.NewValueIsRequiredError("body")
	}
	if err := errors.Join(errName, errBody); err != nil {
		return Template{}, err
	}
	return Template{name: name, subject: subject, body: body}, nil
}

func (t Template) Name() string    { return t.name }
func (t Template) Subject() string { return t.subject }
func (t Template) Body() string    { return t.body }

// Render executes subject and body against data. Missing keys are errors.
func (t Template) Render(data any) (subject, body string, err error) {
	if subject, err = execute(t.name+".subject", t.subject, data); err != nil {
		return "", "", err
	}
	if body, err = execute(t.name+".body", t.body, data); err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func execute(name, text string, data any) (string, error) {
	tpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err = tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// Message is a rendered notification waiting in the outbox.
type Message struct {
	id           kernel.UUID
	templateName string
	relatedID    kernel.UUID
	subject      string
	body         string
	createdAt    time.Time
}

// NewMessage renders tpl for the entity relatedID.
func NewMessage(id kernel.UUID, tpl Template, relatedID kernel.UUID, data any, now time.Time) (*Message, error) {
	if err := errors.Join(id.Validate(), relatedID.Validate()); err != nil {
		return nil, err
	}
	subject, body, err := tpl.Render(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		id:           id,
		templateName: tpl.name,
		relatedID:    relatedID,
		subject:      subject,
		body:         body,
		createdAt:    now,
	}, nil
}

// RestoreMessage rebuilds an already rendered message from the outbox.
func RestoreMessage(
	id kernel.UUID,
	templateName string,
	relatedID kernel.UUID,
	subject, body string,
	createdAt time.Time,
) (*Message, error) {
	if err := errors.Join(id.Validate(), relatedID.Validate()); err != nil {
		return nil, err
	}
	return &Message{
		id:           id,
		templateName: templateName,
		relatedID:    relatedID,
		subject:      subject,
		body:         body,
		createdAt:    createdAt,
	}, nil
}

func (m *Message) ID() kernel.UUID        { return m.id }
func (m *Message) TemplateName() string   { return m.templateName }
func (m *Message) RelatedID() kernel.UUID { return m.relatedID }
func (m *Message) Subject() string        { return m.subject }
func (m *Message) Body() string           { return m.body }
func (m *Message) CreatedAt() time.Time   { return m.createdAt }
