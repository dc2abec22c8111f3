package testhelper

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/logfwd/logfwd/scribe"
)

// Server is a fake log-aggregation server for tests. It accepts framed
// binary connections on a real TCP listener, records every submitted batch,
// and answers each call with a scripted result code.
type Server struct {
	ln    net.Listener
	tconf *thrift.TConfiguration
	wg    sync.WaitGroup

	mu      sync.Mutex
	result  scribe.ResultCode
	batches [][]*scribe.LogEntry
	conns   map[net.Conn]struct{}
}

// NewServer returns a running Server on a random loopback port.
func NewServer() (*Server, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	s := &Server{
		ln:    ln,
		tconf: &thrift.TConfiguration{SocketTimeout: 5 * time.Second},
		conns: make(map[net.Conn]struct{}),
	}
	s.wg.Add(1)
	go s.acceptLoop()
	return s, nil
}

// Host returns the listener host.
func (s *Server) Host() string {
	return s.ln.Addr().(*net.TCPAddr).IP.String()
}

// Port returns the listener port.
func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		c, err := s.ln.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		s.conns[c] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serve(c)
	}
}

func (s *Server) serve(c net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		c.Close()
	}()

	sock := thrift.NewTSocketFromConnConf(c, s.tconf)
	trans := thrift.NewTFramedTransportConf(sock, s.tconf)
	proto := thrift.NewTBinaryProtocolConf(trans, s.tconf)
	proc := scribe.NewProcessor(s)

	ctx := context.Background()
	for {
		ok, _ := proc.Process(ctx, proto, proto)
		if !ok {
			return
		}
	}
}

// Log implements scribe.Scribe, recording the batch.
func (s *Server) Log(ctx context.Context, messages []*scribe.LogEntry) (scribe.ResultCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make([]*scribe.LogEntry, len(messages))
	copy(batch, messages)
	s.batches = append(s.batches, batch)
	return s.result, nil
}

// SetResult scripts the result code returned for subsequent batches.
func (s *Server) SetResult(rc scribe.ResultCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = rc
}

// Batches returns a copy of every batch received so far, in arrival order.
func (s *Server) Batches() [][]*scribe.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	batches := make([][]*scribe.LogEntry, len(s.batches))
	copy(batches, s.batches)
	return batches
}

// Entries returns every received entry flattened in arrival order.
func (s *Server) Entries() []*scribe.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []*scribe.LogEntry
	for _, batch := range s.batches {
		entries = append(entries, batch...)
	}
	return entries
}

// DropConnections closes every live client connection, leaving the listener
// up. The next submission on an affected client fails at the transport.
func (s *Server) DropConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.Close()
	}
}

// Close shuts the server down and waits for its connections to finish.
func (s *Server) Close() error {
	err := s.ln.Close()
	s.DropConnections()
	s.wg.Wait()
	return err
}
