package main

import (
	"flag"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"paintchat/internal/export"
	"paintchat/internal/logger"
	"paintchat/internal/room"
	"paintchat/internal/transport"
)

var (
	addr            = flag.String("addr", ":9001", "listen address")
	identifyTimeout = flag.Duration("identify-timeout", time.Minute, "how long a connection may stay unidentified")
	sendBuffer      = flag.Int("send-buffer", 64, "outbound frames buffered per connection")
	announce        = flag.Bool("mdns", true, "advertise the server on the local network")
)

func main() {
	flag.Parse()
	defer logger.Sync()

	hub := room.NewHub()
	svc := transport.NewService(hub, transport.Options{
		IdentifyTimeout: *identifyTimeout,
		SendBuffer:      *sendBuffer,
	})

	r := mux.NewRouter()
	r.HandleFunc("/ws/{room}", svc.HandleWS)
	r.HandleFunc("/rooms/{room}/canvas.pdf", canvasPDF(hub)).Methods(http.MethodGet)

	if *announce {
		if port, err := listenPort(*addr); err == nil {
			server, merr := transport.Advertise(port)
			if merr != nil {
				logger.Warn("mDNS advertise failed", zap.Error(merr))
			} else {
				defer server.Shutdown()
			}
		}
	}

	if ip, err := transport.OutgoingIP(); err == nil {
		if port, perr := listenPort(*addr); perr == nil {
			logger.Infof("share this address: ws://%s:%d/ws/<room>", ip, port)
		}
	}

	logger.Info("paintchat server listening", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, r); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}

// canvasPDF serves a room's current canvas content as a PDF.
func canvasPDF(hub *room.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		rm := hub.Get(mux.Vars(req)["room"])
		if rm == nil {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		if err := export.PDF(w, rm.Snapshot()); err != nil {
			logger.Error("canvas export failed",
				zap.String("room", rm.Name), zap.Error(err))
		}
	}
}

func listenPort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(portStr)
}
