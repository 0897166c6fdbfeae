package net

import (
	"bytes"
	"context"
	"log"
	"sync"

	"LocalPaint/internal/export"
	"LocalPaint/internal/paint"
	"LocalPaint/internal/state"

	"github.com/gorilla/websocket"
)

// maxMessageSize bounds one client command. Commands are small JSON objects;
// text for the text tool is the largest field.
const maxMessageSize = 64 << 10

// Peer is the browser host driving one session over a websocket.
type Peer struct {
	Conn  *websocket.Conn
	Entry *state.Entry

	writeMu sync.Mutex
}

func (p *Peer) writeJSON(m ServerMessage) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteJSON(m)
}

func (p *Peer) writeFrame(png []byte) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteMessage(websocket.BinaryMessage, png)
}

// PeerManager tracks the connected browser hosts.
type PeerManager struct {
	peers map[string]*Peer
	mu    sync.RWMutex
}

func NewPeerManager() *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
	}
}

func (pm *PeerManager) Add(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[peer.Entry.ID] = peer
	log.Printf("Browser connected from %s to session %s (%d connected)", peer.Conn.RemoteAddr(), peer.Entry.ID, len(pm.peers))
}

func (pm *PeerManager) Remove(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.peers[peer.Entry.ID] == peer {
		delete(pm.peers, peer.Entry.ID)
	}
	log.Printf("Browser disconnected from session %s", peer.Entry.ID)
}

func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Serve pumps commands from the peer into its session until the connection
// drops or ctx ends. After every command the peer receives a new frame if
// pixels changed, and always the tool state.
func (pm *PeerManager) Serve(ctx context.Context, peer *Peer) {
	pm.Add(peer)
	defer pm.Remove(peer)
	defer peer.Conn.Close()

	peer.Conn.SetReadLimit(maxMessageSize)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go peer.forwardPrompts(ctx)
	go func() {
		// Unblocks ReadJSON when the host shuts down.
		<-ctx.Done()
		peer.Conn.Close()
	}()

	if err := peer.sync(ctx, nil, true); err != nil {
		log.Printf("Initial sync for %s failed: %v", peer.Entry.ID, err)
		return
	}

	for {
		var msg ClientMessage
		if err := peer.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Session %s: read failed: %v", peer.Entry.ID, err)
			}
			return
		}
		if err := peer.sync(ctx, &msg, msg.Type == "refresh"); err != nil {
			log.Printf("Session %s: %v", peer.Entry.ID, err)
			return
		}
	}
}

// sync applies msg (if any) on the session's actor and sends the results.
func (p *Peer) sync(ctx context.Context, msg *ClientMessage, forceFrame bool) error {
	var (
		applyErr error
		frame    bytes.Buffer
		st       *StateInfo
		encErr   error
	)
	before := p.Entry.Changes()
	err := p.Entry.Actor.Do(ctx, func(s *paint.Session) {
		if msg != nil {
			applyErr = apply(s, *msg)
		}
		if img := s.Image(); img != nil && (forceFrame || p.Entry.Changes() != before) {
			encErr = export.WritePNG(&frame, img)
		}
		st = stateOf(s)
	})
	if err != nil {
		return err
	}
	if encErr != nil {
		return encErr
	}
	if frame.Len() > 0 {
		if err := p.writeFrame(frame.Bytes()); err != nil {
			return err
		}
	}
	if applyErr != nil {
		if err := p.writeJSON(ServerMessage{Type: "error", Error: applyErr.Error()}); err != nil {
			return err
		}
	}
	return p.writeJSON(ServerMessage{Type: "state", State: st})
}

func (p *Peer) forwardPrompts(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case at := <-p.Entry.Prompts:
			if err := p.writeJSON(ServerMessage{Type: "prompt", X: at.X, Y: at.Y}); err != nil {
				log.Printf("Session %s: prompt not delivered: %v", p.Entry.ID, err)
				return
			}
		}
	}
}
