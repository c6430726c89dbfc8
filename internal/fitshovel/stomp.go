package fitshovel

import (
	"crypto/tls"
	"strings"
	"time"

	stomp "github.com/go-stomp/stomp/v3"
	"github.com/sirupsen/logrus"
)

const reconnectDelay = 5 * time.Second

// StompSession publishes record batches to a STOMP broker topic, retrying
// the connection on publish failure. Adapted from
// opensciencegrid-xrootd-monitoring-shoveler/stomp.go's StompSession /
// handleReconnect / publish.
type StompSession struct {
	addr     string
	host     string
	topic    string
	user     string
	password string
	useTLS   bool

	conn   *stomp.Conn
	logger *logrus.Logger
}

// NewStompSession dials addr and connects, blocking (with retry) until a
// connection succeeds.
func NewStompSession(addr, host, topic, user, password string, useTLS bool, logger *logrus.Logger) *StompSession {
	if logger == nil {
		logger = logrus.New()
	}
	if !strings.HasPrefix(topic, "/topic/") {
		topic = "/topic/" + topic
	}
	s := &StompSession{
		addr:     addr,
		host:     host,
		topic:    topic,
		user:     user,
		password: password,
		useTLS:   useTLS,
		logger:   logger,
	}
	s.reconnect()
	return s
}

func (s *StompSession) reconnect() {
	if s.conn != nil {
		if err := s.conn.Disconnect(); err != nil {
			s.logger.Errorln("fitshovel: error disconnecting stomp session:", err)
		}
	}

	for {
		var conn *stomp.Conn
		var err error

		if s.useTLS {
			var netConn *tls.Conn
			netConn, err = tls.Dial("tcp", s.addr, &tls.Config{})
			if err == nil {
				conn, err = stomp.Connect(netConn,
					stomp.ConnOpt.Login(s.user, s.password),
					stomp.ConnOpt.Host(s.host))
			}
		} else {
			conn, err = stomp.Dial("tcp", s.addr,
				stomp.ConnOpt.Login(s.user, s.password),
				stomp.ConnOpt.Host(s.host))
		}

		if err == nil {
			s.conn = conn
			return
		}
		s.logger.Errorln("fitshovel: failed to connect to stomp broker, retrying:", err)
		<-time.After(reconnectDelay)
	}
}

// Publish sends payload to the session's topic, reconnecting and retrying
// on failure.
func (s *StompSession) Publish(payload []byte) {
	for {
		err := s.conn.Send(s.topic, "application/json", payload, stomp.SendOpt.Receipt)
		if err == nil {
			return
		}
		s.logger.Errorln("fitshovel: failed to publish record batch:", err)
		s.reconnect()
	}
}
