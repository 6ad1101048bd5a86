package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"snowtree/model"
)

//go:embed static
var staticFS embed.FS

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	hub      *Hub
	http     *http.Server
}

func NewServer(addr string, upgrader websocket.Upgrader, hub *Hub) *Server {
	s := &Server{
		addr:     addr,
		upgrader: upgrader,
		hub:      hub,
	}
	s.http = &http.Server{Addr: addr, Handler: s.Handler()}
	return s
}

func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(static)))
	return mux
}

// 每个连接一个协程读取请求
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("err: ", err)
		return
	}
	c := s.hub.join(conn)
	if c == nil {
		return
	}
	defer s.hub.leave(c)

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithField("client", c.id).Debug("err: ", err)
			}
			return
		}
		select {
		case s.hub.msg <- request{from: c, msg: msg}:
		case <-s.hub.done:
			return
		}
	}
}

// Listen 先绑定端口，端口不可用时启动即失败
func (s *Server) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.addr)
}

func (s *Server) Serve(ln net.Listener) error {
	go s.hub.Run()
	log.WithField("addr", ln.Addr().String()).Info("websocket server listening")
	err := s.http.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}
