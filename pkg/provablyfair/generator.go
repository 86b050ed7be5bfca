// Package provablyfair implements the commit-reveal outcome generator.
//
// Protocol: the house publishes sha256(serverSeed) before any bets are
// taken. Each draw derives its number from
// HMAC-SHA256(serverSeed, "clientSeed:nonce:round") and increments the
// nonce, so no two draws under one commitment share a derivation
// input. After a round settles the full inputs are revealed as a Proof
// that anyone can replay; rotating the commitment discards the seed
// pair and restarts the nonce.
package provablyfair

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync"
)

// WheelSize is the number of pockets on a European wheel.
const WheelSize = 37

// drawLimit is the largest multiple of WheelSize representable in a
// uint32. Draws at or above it are rejected and resampled from the
// same HMAC stream; plain modulo would bias low pockets because 2^32
// is not a multiple of 37.
const drawLimit = (1 << 32) / WheelSize * WheelSize

// Proof is the verification record for one draw, revealed only after
// the round it belongs to has settled.
type Proof struct {
	ServerSeed     string `json:"server_seed"`
	ServerSeedHash string `json:"server_seed_hash"`
	ClientSeed     string `json:"client_seed"`
	Nonce          uint64 `json:"nonce"`
	WinningNumber  int    `json:"winning_number"`
}

// State is the full generator state for atomic snapshots. It contains
// the unrevealed server seed; persist it only server-side.
type State struct {
	ServerSeed string `json:"server_seed"`
	ClientSeed string `json:"client_seed"`
	Nonce      uint64 `json:"nonce"`
	LastProof  *Proof `json:"last_proof,omitempty"`
}

// Generator holds the active commitment. Safe for concurrent use; the
// hash may be read while a draw is in flight.
type Generator struct {
	mu         sync.Mutex
	serverSeed string
	seedHash   string
	clientSeed string
	nonce      uint64
	last       *Proof
}

// New creates a generator with fresh random seeds.
func New() (*Generator, error) {
	serverSeed, err := randomSeed()
	if err != nil {
		return nil, fmt.Errorf("failed to generate server seed: %w", err)
	}
	clientSeed, err := randomSeed()
	if err != nil {
		return nil, fmt.Errorf("failed to generate client seed: %w", err)
	}
	return NewWithSeeds(serverSeed, clientSeed), nil
}

// NewWithSeeds creates a generator from known seeds. Used by tests and
// snapshot restore; production startup goes through New.
func NewWithSeeds(serverSeed, clientSeed string) *Generator {
	return &Generator{
		serverSeed: serverSeed,
		seedHash:   hashSeed(serverSeed),
		clientSeed: clientSeed,
	}
}

// CommitmentHash returns the published digest of the current server
// seed. Available before any round; never changes until rotation.
func (g *Generator) CommitmentHash() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seedHash
}

// Spin draws the next winning number under the current commitment,
// records it as the last-round proof, and advances the nonce.
func (g *Generator) Spin() (int, Proof) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := deriveNumber(g.serverSeed, g.clientSeed, g.nonce)
	proof := Proof{
		ServerSeed:     g.serverSeed,
		ServerSeedHash: g.seedHash,
		ClientSeed:     g.clientSeed,
		Nonce:          g.nonce,
		WinningNumber:  n,
	}
	g.last = &proof
	g.nonce++
	return n, proof
}

// LastProof returns the proof of the most recent settled draw. The
// second return is false before the first draw and after rotation.
// Revealing the proof discloses the server seed, so callers must only
// expose it once the round is settled.
func (g *Generator) LastProof() (Proof, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last == nil {
		return Proof{}, false
	}
	return *g.last, true
}

// Rotate discards the current commitment: new seed pair, nonce back to
// zero, last proof cleared. Draws made under the old commitment stay
// verifiable only through proofs captured before rotation.
func (g *Generator) Rotate() error {
	serverSeed, err := randomSeed()
	if err != nil {
		return fmt.Errorf("failed to rotate server seed: %w", err)
	}
	clientSeed, err := randomSeed()
	if err != nil {
		return fmt.Errorf("failed to rotate client seed: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.serverSeed = serverSeed
	g.seedHash = hashSeed(serverSeed)
	g.clientSeed = clientSeed
	g.nonce = 0
	g.last = nil
	return nil
}

// SetClientSeed replaces the client seed for subsequent draws.
func (g *Generator) SetClientSeed(seed string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clientSeed = seed
}

// Snapshot returns a copy of the full generator state.
func (g *Generator) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	st := State{
		ServerSeed: g.serverSeed,
		ClientSeed: g.clientSeed,
		Nonce:      g.nonce,
	}
	if g.last != nil {
		p := *g.last
		st.LastProof = &p
	}
	return st
}

// Restore replaces the generator state from a snapshot.
func (g *Generator) Restore(st State) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.serverSeed = st.ServerSeed
	g.seedHash = hashSeed(st.ServerSeed)
	g.clientSeed = st.ClientSeed
	g.nonce = st.Nonce
	g.last = nil
	if st.LastProof != nil {
		p := *st.LastProof
		g.last = &p
	}
}

// Verify replays a proof: the derivation must reproduce the claimed
// number and the server seed must hash to the published commitment.
func Verify(p Proof) error {
	if hashSeed(p.ServerSeed) != p.ServerSeedHash {
		return fmt.Errorf("server seed does not match published hash")
	}
	if got := deriveNumber(p.ServerSeed, p.ClientSeed, p.Nonce); got != p.WinningNumber {
		return fmt.Errorf("derivation yields %d, proof claims %d", got, p.WinningNumber)
	}
	return nil
}

// deriveNumber maps the HMAC stream for (seeds, nonce) to a pocket.
// Four bytes are consumed per attempt as a big-endian uint32; values
// past drawLimit are discarded and the stream continues, so each
// accepted value is uniform over 0-36.
func deriveNumber(serverSeed, clientSeed string, nonce uint64) int {
	stream := newByteStream(serverSeed, clientSeed, nonce)
	for {
		var buf [4]byte
		for i := range buf {
			buf[i] = stream.next()
		}
		v := binary.BigEndian.Uint32(buf[:])
		if v < drawLimit {
			return int(v % WheelSize)
		}
	}
}

// byteStream yields the HMAC-SHA256 output for
// "clientSeed:nonce:round", advancing round each time a 32-byte block
// is exhausted.
type byteStream struct {
	serverSeed string
	clientSeed string
	nonce      uint64
	round      uint64
	pos        int
	block      [sha256.Size]byte
}

func newByteStream(serverSeed, clientSeed string, nonce uint64) *byteStream {
	s := &byteStream{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		nonce:      nonce,
	}
	s.fill()
	return s
}

func (s *byteStream) next() byte {
	if s.pos >= sha256.Size {
		s.round++
		s.pos = 0
		s.fill()
	}
	b := s.block[s.pos]
	s.pos++
	return b
}

func (s *byteStream) fill() {
	h := hmac.New(sha256.New, []byte(s.serverSeed))
	fmt.Fprintf(h, "%s:%d:%d", s.clientSeed, s.nonce, s.round)
	copy(s.block[:], h.Sum(nil))
}

func hashSeed(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

func randomSeed() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
