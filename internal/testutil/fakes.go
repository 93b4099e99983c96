package testutil

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"

	"recipe-api/internal/utils/storage"
)

// Storage keeps uploaded object keys in memory.
type Storage struct {
	mu      sync.Mutex
	Objects map[string]string
	Deleted []string
	next    int
}

func NewStorage() *Storage {
	return &Storage{Objects: map[string]string{}}
}

func (s *Storage) UploadFile(_ context.Context, file *multipart.FileHeader, folder string, allowedExt ...string) (string, error) {
	if !storage.IsAllowed(file.Filename, allowedExt...) {
		return "", storage.ErrExtensionNotAllowed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	key := fmt.Sprintf("%s/object-%d%s", folder, s.next, strings.ToLower(filepath.Ext(file.Filename)))
	s.Objects[key] = file.Filename
	return key, nil
}

func (s *Storage) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.test/" + objectKey
}

func (s *Storage) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, "https://bucket.test/") {
		return ""
	}
	return strings.TrimPrefix(link, "https://bucket.test/")
}

func (s *Storage) DeleteFile(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, objectKey)
	s.Deleted = append(s.Deleted, objectKey)
	return nil
}

type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer records sent mail.
type Mailer struct {
	mu   sync.Mutex
	Sent []Mail
}

func (m *Mailer) SendMail(_ context.Context, toEmail string, subject string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, Mail{To: toEmail, Subject: subject, Body: body})
	return nil
}

type Event struct {
	Name string
	ID   uint
}

// Publisher records published events.
type Publisher struct {
	mu     sync.Mutex
	Events []Event
}

func (p *Publisher) Publish(_ context.Context, event string, id uint, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, Event{Name: event, ID: id})
	return nil
}

func (p *Publisher) Close() error { return nil }
