package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/bastiangx/wordtrie/pkg/walker"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Options configures a Server.
type Options struct {
	// Suggest holds the defaults for fields a request leaves out.
	Suggest suggest.Options
	// Find is used for OpHas.
	Find trie.FindOptions
	// MaxWordLength bounds request words in runes. Zero disables the check.
	MaxWordLength int
	// CacheSize is the number of suggestion queries remembered.
	CacheSize int
}

// Server answers spelling requests over a msgpack stream.
type Server struct {
	dict  *suggest.Dictionary
	cache *suggest.Cache
	opts  Options
	nodes int

	in  io.Reader
	enc *msgpack.Encoder
	log *log.Logger

	requests int
}

// NewServer creates a server for dict using stdin/stdout for IPC.
func NewServer(dict *suggest.Dictionary, opts Options) (*Server, error) {
	return NewServerIO(dict, opts, os.Stdin, os.Stdout)
}

// NewServerIO creates a server reading requests from in and writing
// responses to out.
func NewServerIO(dict *suggest.Dictionary, opts Options, in io.Reader, out io.Writer) (*Server, error) {
	cache, err := suggest.NewCache(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion cache: %w", err)
	}
	return &Server{
		dict:  dict,
		cache: cache,
		opts:  opts,
		nodes: trie.CountNodes(dict.Root().Node),
		in:    in,
		enc:   msgpack.NewEncoder(out),
		log:   logger.New("server"),
	}, nil
}

// Start sends the ready message and serves requests until the input ends or
// ctx is done. Requests are handled one at a time in arrival order.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting server")
	if err := s.send(ReadyMessage{Status: "ready"}); err != nil {
		return err
	}

	dec := msgpack.NewDecoder(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("failed to decode request: %w", err)
		}
		s.requests++
		s.Handle(req)
	}
}

// Handle answers one request.
func (s *Server) Handle(req Request) {
	switch req.Op {
	case OpHas:
		s.handleHas(req)
	case OpSuggest:
		s.handleSuggest(req)
	case OpComplete:
		s.handleComplete(req)
	case OpInfo:
		s.send(InfoResponse{
			ID:      req.ID,
			Words:   s.dict.Size(),
			Counted: !s.dict.IsSizeKnown(),
			Nodes:   s.nodes,
			Legacy:  s.dict.IsLegacy(),
			Cache:   s.cache.Stats(),
		})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %q", req.Op), 400)
	}
}

func (s *Server) validate(req Request) bool {
	if err := utils.ValidateWord(req.Word, s.opts.MaxWordLength); err != nil {
		s.log.Debugf("Rejected %q: %v", req.Word, err)
		s.sendError(req.ID, err.Error(), 400)
		return false
	}
	return true
}

func (s *Server) handleHas(req Request) {
	if !s.validate(req) {
		return
	}
	opts := s.opts.Find
	if req.IgnoreCase != nil {
		opts.MatchCase = !*req.IgnoreCase
	}
	f := s.dict.FindWord(req.Word, opts)
	forbidden := f.Forbidden || s.dict.IsForbiddenWord(req.Word)
	s.send(HasResponse{ID: req.ID, Found: f.IsFound() && !forbidden, Forbidden: forbidden})
}

// suggestOptions merges the request fields into the defaults.
func (s *Server) suggestOptions(req Request) (suggest.Options, error) {
	opts := s.opts.Suggest
	if req.Limit != nil {
		if *req.Limit < 0 {
			return opts, fmt.Errorf("invalid limit %d", *req.Limit)
		}
		opts.NumSuggestions = *req.Limit
	}
	if req.ChangeLimit != nil {
		opts.ChangeLimit = *req.ChangeLimit
	}
	if req.IgnoreCase != nil {
		opts.IgnoreCase = *req.IgnoreCase
	}
	if req.IncludeTies != nil {
		opts.IncludeTies = *req.IncludeTies
	}
	if req.CompoundMethod != nil {
		m, ok := walker.ParseCompoundMethod(*req.CompoundMethod)
		if !ok {
			return opts, fmt.Errorf("unknown compound method %q", *req.CompoundMethod)
		}
		opts.CompoundMethod = m
	}
	return opts, nil
}

func (s *Server) handleSuggest(req Request) {
	if !s.validate(req) {
		return
	}
	opts, err := s.suggestOptions(req)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	start := time.Now()
	res := s.cache.Suggest(s.dict, req.Word, opts)
	elapsed := time.Since(start)

	sugs := make([]Suggestion, len(res))
	for i, r := range res {
		sugs[i] = Suggestion{Word: r.Word, Cost: r.Cost}
	}
	s.log.Debugf("suggest %q: %d results in %v", req.Word, len(sugs), elapsed)
	s.send(SuggestResponse{
		ID:          req.ID,
		Suggestions: sugs,
		Count:       len(sugs),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleComplete(req Request) {
	if !s.validate(req) {
		return
	}
	limit := s.opts.Suggest.NumSuggestions
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit < 0 {
		s.sendError(req.ID, fmt.Sprintf("invalid limit %d", limit), 400)
		return
	}

	start := time.Now()
	sugs := []Suggestion{}
	if limit > 0 {
		for w := range s.dict.CompleteWord(req.Word) {
			if s.dict.IsForbiddenWord(w) {
				continue
			}
			sugs = append(sugs, Suggestion{Word: w})
			if len(sugs) == limit {
				break
			}
		}
	}
	elapsed := time.Since(start)
	s.send(SuggestResponse{
		ID:          req.ID,
		Suggestions: sugs,
		Count:       len(sugs),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// send encodes response to the output stream.
func (s *Server) send(response any) error {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
