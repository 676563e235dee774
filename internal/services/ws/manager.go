// Package ws рассылает подключенным клиентам сигнал «данные изменились».
// Сами данные по ws не ходят: клиент, получив событие, перечитывает
// нужный агрегат обычным запросом.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Manager struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	manager := &Manager{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
	go manager.Run()
	return manager
}

func (m *Manager) Register(client *Client) {
	m.register <- client
}

func (m *Manager) Unregister(client *Client) {
	m.unregister <- client
}

func (m *Manager) Broadcast(message []byte) {
	m.broadcast <- message
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			m.mu.Unlock()
		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.Send)
			}
			m.mu.Unlock()
		case message := <-m.broadcast:
			m.mu.Lock()
			for client := range m.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(m.clients, client)
				}
			}
			m.mu.Unlock()
		}
	}
}

func (m *Manager) notify(event string) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":      event,
		"timestamp": time.Now().UTC(),
	})
	m.Broadcast(data)
}

// RequestsUpdated — очередь заявок изменилась, клиентам пора перечитать список.
func (m *Manager) RequestsUpdated() {
	m.notify("shift_requests_updated")
}

// ScheduleUpdated — календарь смен изменился.
func (m *Manager) ScheduleUpdated() {
	m.notify("schedule_updated")
}

func (m *Manager) ReadPump(client *Client) {
	defer func() {
		m.Unregister(client)
		client.Conn.Close()
	}()

	for {
		// Клиенты ничего не присылают, соединение живет ради событий
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (m *Manager) WritePump(client *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			client.Conn.WriteMessage(websocket.TextMessage, message)
		case <-ticker.C:
			client.Conn.WriteMessage(websocket.PingMessage, nil)
		}
	}
}
