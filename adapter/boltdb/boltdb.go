// Package boltdb exposes a bolt bucket as a lazy, re-iterable sequence.
//
// Every traversal opens its own read-only transaction,
// and the transaction lives until the traversal is exhausted or closed.
// Don't write to the same database from the goroutine that holds an open traversal,
// bolt serialises writers behind the memory map and that would deadlock.
package boltdb

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/boltdb/bolt"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/lazyq/pkg/seqkit"
)

const ErrBucketNotFound errorkit.Error = "ErrBucketNotFound"

// Entry is a stored value with the sequence number bolt assigned to it.
type Entry struct {
	ID    uint64
	Value string
}

type Store struct {
	DB     *bolt.DB
	Bucket string
	// Logger is optional, nothing is logged when it is nil.
	Logger *logging.Logger
}

// Open opens the bolt database at path and makes sure the bucket exists.
func Open(path, bucket string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	s := &Store{DB: db, Bucket: bucket}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		return nil, errorkit.Merge(err, db.Close())
	}
	return s, nil
}

// Close the database and release the file lock.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Append stores the values at the end of the bucket, in a single transaction.
func (s *Store) Append(ctx context.Context, values ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.DB.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(s.Bucket))
		if err != nil {
			return err
		}
		for _, v := range values {
			id, err := bucket.NextSequence()
			if err != nil {
				return err
			}
			if err := bucket.Put(uintToBytes(id), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger().Error(ctx, "bolt append failed", logging.ErrField(err), logging.Field("bucket", s.Bucket))
		return err
	}
	s.logger().Debug(ctx, "bolt append", logging.Field("bucket", s.Bucket), logging.Field("count", len(values)))
	return nil
}

// Entries returns the content of the bucket in key order.
// The bucket is read again on every traversal, so appends made between two traversals are visible.
func (s *Store) Entries(ctx context.Context) seqkit.Sequence[Entry] {
	return traverse(ctx, s, func(k, v []byte) Entry {
		return Entry{ID: binary.BigEndian.Uint64(k), Value: string(v)}
	})
}

// Values is the form of Entries that only yields the stored values.
func (s *Store) Values(ctx context.Context) seqkit.Sequence[string] {
	return traverse(ctx, s, func(_, v []byte) string { return string(v) })
}

func traverse[T any](ctx context.Context, s *Store, decode func(k, v []byte) T) seqkit.Sequence[T] {
	return seqkit.SequenceFunc[T](func() seqkit.Iterator[T] {
		s.logger().Debug(ctx, "bolt traversal", logging.Field("bucket", s.Bucket))
		tx, err := s.DB.Begin(false)
		if err != nil {
			s.logger().Error(ctx, "bolt traversal failed", logging.ErrField(err))
			return seqkit.Error[T](err).Iterator()
		}
		bucket := tx.Bucket([]byte(s.Bucket))
		if bucket == nil {
			err := ErrBucketNotFound.F("bucket %q", s.Bucket)
			s.logger().Error(ctx, "bolt traversal failed", logging.ErrField(err))
			return seqkit.Error[T](errorkit.Merge(err, tx.Rollback())).Iterator()
		}
		i := &cursorIter[T]{ctx: ctx, tx: tx, cursor: bucket.Cursor(), decode: decode}
		i.key, i.value = i.cursor.First()
		return i
	})
}

// cursorIter walks a bucket cursor.
// The current key/value pair is always the next one to yield,
// and the transaction is released as soon as the cursor runs out.
type cursorIter[T any] struct {
	ctx    context.Context
	tx     *bolt.Tx
	cursor *bolt.Cursor
	decode func(k, v []byte) T

	key, value []byte
	err        error
}

func (i *cursorIter[T]) HasNext() bool {
	if i.tx == nil {
		return false
	}
	if err := i.ctx.Err(); err != nil {
		i.err = err
		i.release()
		return false
	}
	if i.key == nil {
		i.release()
		return false
	}
	return true
}

func (i *cursorIter[T]) Next() (T, error) {
	if !i.HasNext() {
		var zero T
		return zero, seqkit.ErrExhausted
	}
	// bolt owns the key and value memory only while the transaction is open
	v := i.decode(i.key, i.value)
	i.key, i.value = i.cursor.Next()
	return v, nil
}

func (i *cursorIter[T]) Err() error { return i.err }

func (i *cursorIter[T]) Close() error {
	return i.release()
}

func (i *cursorIter[T]) release() error {
	if i.tx == nil {
		return nil
	}
	tx := i.tx
	i.tx, i.cursor = nil, nil
	i.key, i.value = nil, nil
	return tx.Rollback()
}

func (s *Store) logger() *logging.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return discard
}

var discard = &logging.Logger{Out: io.Discard}

func uintToBytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
