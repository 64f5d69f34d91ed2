// Package redisstore implementa el PersistenceAdapter sobre Redis con la misma
// disposición que el almacenamiento local del navegador: una clave por
// colección con el JSON completo.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/domain/repository"
	"github.com/playabrava/gestor-camping/internal/infrastructure/snapshot"
)

var _ repository.PersistenceAdapter = (*Store)(nil)

// DefaultPrefix prefijo de las claves.
const DefaultPrefix = "camping"

// Config conexión a Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store adaptador Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// Connect crea el cliente y comprueba la conexión con PING.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return New(client, cfg.Prefix), nil
}

// New envuelve un cliente existente.
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(name string) string { return s.prefix + ":" + name }

// get devuelve nil si la clave no existe.
func (s *Store) get(ctx context.Context, name string) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: GET %s: %w", s.key(name), err)
	}
	return b, nil
}

func (s *Store) set(ctx context.Context, name string, value []byte) error {
	if err := s.client.Set(ctx, s.key(name), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: SET %s: %w", s.key(name), err)
	}
	return nil
}

func (s *Store) LoadIncidents(ctx context.Context) ([]*entity.Incident, error) {
	b, err := s.get(ctx, "incidents")
	if err != nil {
		return nil, err
	}
	return snapshot.DecodeIncidents(b)
}

func (s *Store) SaveIncidents(ctx context.Context, incidents []*entity.Incident) error {
	b, err := snapshot.EncodeIncidents(incidents)
	if err != nil {
		return err
	}
	return s.set(ctx, "incidents", b)
}

func (s *Store) LoadUserRegistry(ctx context.Context) ([]*entity.User, error) {
	b, err := s.get(ctx, "users")
	if err != nil {
		return nil, err
	}
	return snapshot.DecodeUsers(b)
}

func (s *Store) SaveUserRegistry(ctx context.Context, users []*entity.User) error {
	b, err := snapshot.EncodeUsers(users)
	if err != nil {
		return err
	}
	return s.set(ctx, "users", b)
}

// LoadUser sesión guardada; nil si no hay.
func (s *Store) LoadUser(ctx context.Context) (*entity.User, error) {
	b, err := s.get(ctx, "currentUser")
	if err != nil {
		return nil, err
	}
	return snapshot.DecodeUser(b)
}

// SaveUser con nil borra la clave (logout).
func (s *Store) SaveUser(ctx context.Context, user *entity.User) error {
	if user == nil {
		if err := s.client.Del(ctx, s.key("currentUser")).Err(); err != nil {
			return fmt.Errorf("redis: DEL %s: %w", s.key("currentUser"), err)
		}
		return nil
	}
	b, err := snapshot.EncodeUser(user)
	if err != nil {
		return err
	}
	return s.set(ctx, "currentUser", b)
}

func (s *Store) Close() error { return s.client.Close() }
