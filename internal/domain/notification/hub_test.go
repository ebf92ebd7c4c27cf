package notification

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestHubConcurrentRegisterAndSend(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Shutdown()

	userID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			conn := &Connection{UserID: userID, Send: make(chan []byte, 1)}
			hub.Register(conn)
			hub.Unregister(conn)
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if err := hub.SendToUser(userID, map[string]string{"type": "ping"}); err != nil {
					t.Errorf("SendToUser: %v", err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestHubSendToUnknownUserIsNoop(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Shutdown()

	if err := hub.SendToUser(uuid.New(), map[string]string{"type": "ping"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
