package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/naturescrunch/storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Service owns cart access for the rest of the app. Mutations go through
// the store; observers registered with OnChange hear about every change.
type Service struct {
	store Store
	sfg   singleflight.Group // Prevents duplicate loads of the same session

	mu        sync.RWMutex
	observers []func(sessionID string)
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// OnChange registers a callback invoked after every cart mutation.
func (s *Service) OnChange(fn func(sessionID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Service) notify(sessionID string) {
	s.mu.RLock()
	observers := s.observers
	s.mu.RUnlock()
	for _, fn := range observers {
		fn(sessionID)
	}
}

// Get returns the session's cart, an empty cart if none exists yet.
// Singleflight collapses concurrent loads of the same session, so the
// shared result is cloned per caller before anyone can mutate it.
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		cart, errGet := s.store.Get(ctx, sessionID)
		if errGet != nil && errors.Is(errGet, ErrCartNotFound) {
			return New(sessionID), nil
		}
		if errGet != nil {
			return nil, errGet
		}
		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*Cart).clone(), nil
}

// AddItem adds a line to the session's cart (incrementing quantity when the
// id is already present) and returns the updated cart.
func (s *Service) AddItem(ctx context.Context, sessionID string, line domain.CartLine) (*Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Add(line)
	if errSave := s.store.Save(ctx, cart); errSave != nil {
		log.Printf("store save error: %v", errSave)
		return nil, errSave
	}

	s.notify(sessionID)
	return cart, nil
}

// SetQuantity sets a line's quantity; zero or below removes the line.
func (s *Service) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.SetQuantity(itemID, quantity)
	if errSave := s.store.Save(ctx, cart); errSave != nil {
		log.Printf("store save error: %v", errSave)
		return nil, errSave
	}

	s.notify(sessionID)
	return cart, nil
}

// RemoveItem deletes a line from the session's cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (*Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Remove(itemID)
	if errSave := s.store.Save(ctx, cart); errSave != nil {
		log.Printf("store save error: %v", errSave)
		return nil, errSave
	}

	s.notify(sessionID)
	return cart, nil
}

// Clear empties the session's cart. Called after a successful checkout
// handoff, and from the cart UI.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		log.Printf("store delete error: %v", err)
		return err
	}

	s.notify(sessionID)
	return nil
}
