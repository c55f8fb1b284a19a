package services

import (
	"context"
	"log"
	"sync"
	"time"

	"propositosAPI/internal/types/notification"
)

type PushNotificationProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]any) error
}

// NotificationDispatcher pushes stored notifications to devices off the
// request path through a small worker pool.
type NotificationDispatcher struct {
	service      *NotificationService
	pushProvider PushNotificationProvider
	workers      int
	jobQueue     chan *notification.Notification
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

func NewNotificationDispatcher(service *NotificationService) *NotificationDispatcher {
	dispatcher := &NotificationDispatcher{
		service:  service,
		workers:  5,
		jobQueue: make(chan *notification.Notification, 100),
		stopChan: make(chan struct{}),
	}

	dispatcher.startWorkers()
	return dispatcher
}

// SetPushProvider injects the real FCM provider from main.go. Without a
// provider notifications stay in-app only.
func (d *NotificationDispatcher) SetPushProvider(provider PushNotificationProvider) {
	d.pushProvider = provider
}

func (d *NotificationDispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop shuts the workers down after they have drained whatever is still
// queued.
func (d *NotificationDispatcher) Stop() {
	close(d.stopChan)
	d.wg.Wait()
}

func (d *NotificationDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case notif := <-d.jobQueue:
			d.processJob(notif)
		case <-d.stopChan:
			d.drain()
			return
		}
	}
}

func (d *NotificationDispatcher) drain() {
	for {
		select {
		case notif := <-d.jobQueue:
			d.processJob(notif)
		default:
			return
		}
	}
}

func (d *NotificationDispatcher) processJob(notif *notification.Notification) {
	if d.pushProvider == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if !d.service.pushEnabled(ctx, notif.UserID) {
		return
	}

	tokens, err := d.service.getDeviceTokens(ctx, notif.UserID)
	if err != nil {
		log.Printf("Failed to load device tokens for %s: %v", notif.UserID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	if err := d.pushProvider.SendPush(ctx, tokens, notif.Title, notif.Body, notif.Data); err != nil {
		log.Printf("Push failed for user %s: %v", notif.UserID, err)
	}
}

// Dispatch queues a notification for delivery. Drops the push (not the
// stored row) if the queue stays full.
func (d *NotificationDispatcher) Dispatch(notif *notification.Notification) {
	select {
	case d.jobQueue <- notif:
	case <-time.After(5 * time.Second):
		log.Printf("Failed to queue notification %s: queue full", notif.ID)
	}
}
