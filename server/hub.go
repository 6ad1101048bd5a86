package server

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"snowtree/model"
)

const sendBuffer = 8

type client struct {
	id   string
	conn *websocket.Conn
	send chan model.Msg
}

// 管理所有在线的客户端，向它们广播帧和坐标
type Hub struct {
	clients map[string]*client
	count   int32

	register   chan *client
	unregister chan *client
	// 客户端请求
	msg chan request
	// 发给所有客户端
	broadcast chan model.Msg
	locations chan model.Msg

	done chan struct{}
}

type request struct {
	from *client
	msg  model.Msg
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*client),
		register:   make(chan *client),
		unregister: make(chan *client),
		msg:        make(chan request, 10),
		broadcast:  make(chan model.Msg, 10),
		locations:  make(chan model.Msg, 1),
		done:       make(chan struct{}),
	}
}

// Run 处理客户端注册、请求和广播，直到 Close
func (h *Hub) Run() {
	var locations *model.Msg
	for {
		select {
		case c := <-h.register:
			h.clients[c.id] = c
			atomic.AddInt32(&h.count, 1)
			if locations != nil {
				h.sendTo(c, *locations)
			}
			log.WithField("client", c.id).Info("客户端连接")
		case c := <-h.unregister:
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.send)
				atomic.AddInt32(&h.count, -1)
				log.WithField("client", c.id).Info("客户端断开")
			}
		case msg := <-h.locations:
			locations = &msg
			for _, c := range h.clients {
				h.sendTo(c, msg)
			}
		case msg := <-h.broadcast:
			for _, c := range h.clients {
				h.sendTo(c, msg)
			}
		case req := <-h.msg:
			h.handleRequest(req, locations)
		case <-h.done:
			for id, c := range h.clients {
				delete(h.clients, id)
				close(c.send)
			}
			atomic.StoreInt32(&h.count, 0)
			return
		}
	}
}

func (h *Hub) handleRequest(req request, locations *model.Msg) {
	switch req.msg.Type {
	case model.MsgLocations:
		if locations != nil {
			h.sendTo(req.from, *locations)
		}
	case model.MsgHello:
		h.sendTo(req.from, model.Msg{Type: model.MsgHello, Content: req.from.id})
	default:
		log.WithField("type", req.msg.Type).Warn("no such type")
	}
}

// sendTo 客户端来不及接收时丢弃该消息
func (h *Hub) sendTo(c *client, msg model.Msg) {
	select {
	case c.send <- msg:
	default:
		log.WithField("client", c.id).Debug("client too slow, message dropped")
	}
}

// Broadcast 不会阻塞调用方，来不及处理时丢弃，返回是否发送成功
func (h *Hub) Broadcast(msg model.Msg) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		return false
	}
}

// SetLocations 广播 LED 坐标，并在之后新连接的客户端上重发
func (h *Hub) SetLocations(msg model.Msg) {
	select {
	case h.locations <- msg:
	case <-h.done:
	}
}

func (h *Hub) Clients() int {
	return int(atomic.LoadInt32(&h.count))
}

func (h *Hub) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

func (h *Hub) handleResponse(c *client) {
	for reply := range c.send {
		if err := c.conn.WriteJSON(&reply); err != nil {
			log.WithField("client", c.id).Warn("err: ", err)
		}
	}
	c.conn.Close()
}

func (h *Hub) join(conn *websocket.Conn) *client {
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan model.Msg, sendBuffer),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return nil
	}
	go h.handleResponse(c)
	return c
}

func (h *Hub) leave(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
