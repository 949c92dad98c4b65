package ws

// Hub menampung semua koneksi display antrian (layar ruang tunggu dan
// layar farmasi) dan menyiarkan setiap perubahan status antrian ke
// seluruh client yang terhubung.

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var HubInstance = NewHub()

func init() {
	go HubInstance.Run()
}

// Client mewakili satu koneksi WebSocket.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			log.Debug().Int("clients", len(h.Clients)).Msg("ws client registered")
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				log.Debug().Int("clients", len(h.Clients)).Msg("ws client unregistered")
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

// BroadcastJSON menyiarkan payload sebagai JSON; dipanggil controller
// setiap kali status antrian berubah. Error marshal hanya di-log,
// jangan sampai menggagalkan response HTTP.
func (h *Hub) BroadcastJSON(payload interface{}) {
	message, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("gagal marshal pesan broadcast")
		return
	}
	h.Broadcast <- message
}
