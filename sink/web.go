package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"snowtree/model"
	"snowtree/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// 浏览器预览，每帧游程编码后通过 websocket 广播
type Web struct {
	srv    *server.Server
	colors []model.Color
	frame  uint64
}

// 先绑定端口再在后台启动服务
func OpenWeb(addr string, n int) (*Web, error) {
	srv := server.NewServer(addr, upgrader, server.NewHub())
	ln, err := srv.Listen()
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	go func() {
		if err := srv.Serve(ln); err != nil {
			log.Error("websocket server: ", err)
		}
	}()
	return NewWeb(srv, n), nil
}

func NewWeb(srv *server.Server, n int) *Web {
	return &Web{
		srv:    srv,
		colors: make([]model.Color, n),
	}
}

func (w *Web) Set(i int, c model.Color) {
	w.colors[i] = c
}

func (w *Web) Show() error {
	w.frame++
	data, err := json.Marshal(server.EncodeFrame(w.frame, w.colors))
	if err != nil {
		return err
	}
	w.srv.Hub().Broadcast(model.Msg{Type: model.MsgFrame, Content: string(data)})
	return nil
}

func (w *Web) SetPixelLocations(coords []model.Coordinate) error {
	triples := make([][3]float64, len(coords))
	for i, c := range coords {
		triples[i] = [3]float64{c.X, c.Y, c.Z}
	}
	data, err := json.Marshal(triples)
	if err != nil {
		return err
	}
	w.srv.Hub().SetLocations(model.Msg{Type: model.MsgLocations, Content: string(data)})
	return nil
}

func (w *Web) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return w.srv.Shutdown(ctx)
}
