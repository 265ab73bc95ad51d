package settings

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// keyPrefix namespaces settings keys inside the Badger keyspace.
const keyPrefix = "setting:"

// BadgerStore implements Store on top of BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// OpenBadger opens (or creates) a settings store in dir.
func OpenBadger(dir string, logger logrus.FieldLogger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store at %s: %w", dir, err)
	}
	logger.WithField("path", dir).Debug("settings store opened")

	return &BadgerStore{
		db:  db,
		log: logger.WithField("component", "settings"),
	}, nil
}

func settingKey(key string) []byte {
	return []byte(keyPrefix + key)
}

// Get implements Store.
func (s *BadgerStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(settingKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("failed to read setting")
		return "", false, fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *BadgerStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return stderrors.New("setting key must not be empty")
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(settingKey(key), []byte(value)))
	})
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("failed to write setting")
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}
	s.log.WithField("key", key).Debug("setting saved")
	return nil
}

// Keys returns every stored setting key, without the internal prefix.
func (s *BadgerStore) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return keys, nil
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.log.WithError(err).Error("error closing settings store")
		return err
	}
	return nil
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Errorf(f, v...)
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warningf(f, v...)
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
