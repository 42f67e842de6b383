package wherelib

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// DefaultCacheFileName is used when CacheOptions does not override it.
const DefaultCacheFileName = "lookup.cache"

// Record is one cached entry. A nil TTL never expires.
type Record struct {
	Response     Response  `json:"response"`
	ResponseTime time.Time `json:"response_time"`
	TTL          *uint64   `json:"ttl"`
}

func NewRecord(response Response, ttl *uint64) Record {
	return Record{
		Response:     response.Clone(),
		ResponseTime: time.Now(),
		TTL:          ttl,
	}
}

func (r Record) IsExpired() bool {
	if r.TTL == nil {
		return false
	}

	return time.Since(r.ResponseTime) >= time.Duration(*r.TTL)*time.Second
}

type cacheDocument struct {
	CurrentAddress *Record           `json:"current_address"`
	LookupAddress  map[string]Record `json:"lookup_address"`
}

// Cache persists one current-address record and a map of per-target
// records, each independently timestamped and expirable. The in-memory
// state changes only through the Update/Clear methods and hits the disk
// only on an explicit Save. Readers always receive copies. Safe for
// concurrent use by multiple goroutines.
//
// There is no file locking: two processes saving the same file concurrently
// can interleave and corrupt it.
type Cache struct {
	fs       afero.Fs
	path     string
	envelope *envelope

	mutex sync.Mutex
	data  cacheDocument
}

// CacheOptions configures where and how the cache file is stored. The zero
// value means the OS filesystem, the default directory chain, the default
// file name and no encryption.
type CacheOptions struct {
	Fs        afero.Fs
	Directory string
	FileName  string

	// A non-empty passphrase enables at-rest encryption of the file.
	Passphrase string
}

func NewCache(opts CacheOptions) *Cache {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	if opts.FileName == "" {
		opts.FileName = DefaultCacheFileName
	}

	if opts.Directory == "" {
		opts.Directory = DefaultCacheDir(opts.Fs)
	}

	rv := &Cache{
		fs:   opts.Fs,
		path: filepath.Join(opts.Directory, opts.FileName),
		data: cacheDocument{
			LookupAddress: map[string]Record{},
		},
	}

	if opts.Passphrase != "" {
		rv.envelope = newEnvelope(opts.Passphrase)
	}

	return rv
}

// Path returns the resolved location of the backing file.
func (c *Cache) Path() string {
	return c.path
}

// Load replaces the in-memory state with the contents of the backing file,
// decrypting it when the cache is configured for encryption.
func (c *Cache) Load() error {
	raw, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		return fmt.Errorf("cannot read cache file: %w", err)
	}

	if c.envelope != nil {
		if raw, err = c.envelope.open(raw); err != nil {
			return err
		}
	}

	doc := cacheDocument{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheCorrupted, err)
	}

	if doc.LookupAddress == nil {
		doc.LookupAddress = map[string]Record{}
	}

	c.mutex.Lock()
	c.data = doc
	c.mutex.Unlock()

	return nil
}

// Save writes the in-memory state to the backing file via plain
// create+write. A crash mid-write can corrupt the file.
func (c *Cache) Save() error {
	c.mutex.Lock()
	raw, err := json.Marshal(&c.data)
	c.mutex.Unlock()

	if err != nil {
		return fmt.Errorf("cannot encode cache: %w", err)
	}

	if c.envelope != nil {
		if raw, err = c.envelope.seal(raw); err != nil {
			return err
		}
	}

	if err := c.fs.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("cannot create cache directory: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.path, raw, 0o600); err != nil {
		return fmt.Errorf("cannot write cache file: %w", err)
	}

	return nil
}

// Delete removes the backing file and resets the in-memory state.
func (c *Cache) Delete() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.reset()

	if err := c.fs.Remove(c.path); err != nil {
		return fmt.Errorf("cannot remove cache file: %w", err)
	}

	return nil
}

// Clear drops the current-address record and the whole target map, in
// memory only. Call Save to persist.
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.reset()
}

// caller has to hold the mutex
func (c *Cache) reset() {
	c.data.CurrentAddress = nil
	c.data.LookupAddress = map[string]Record{}
}

// UpdateCurrent replaces the current-address record, resetting its
// timestamp to now.
func (c *Cache) UpdateCurrent(response Response, ttl *uint64) {
	record := NewRecord(response, ttl)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data.CurrentAddress = &record
}

// UpdateTarget replaces the record for the given target address, resetting
// its timestamp to now.
func (c *Cache) UpdateTarget(target net.IP, response Response, ttl *uint64) {
	record := NewRecord(response, ttl)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data.LookupAddress[target.String()] = record
}

// Current returns a copy of the cached current-address response, if any.
func (c *Cache) Current() (Response, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.data.CurrentAddress == nil {
		return Response{}, false
	}

	return c.data.CurrentAddress.Response.Clone(), true
}

// Target returns a copy of the cached response for the given address.
func (c *Cache) Target(target net.IP) (Response, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	record, ok := c.data.LookupAddress[target.String()]
	if !ok {
		return Response{}, false
	}

	return record.Response.Clone(), true
}

// CurrentIsExpired is true when no current-address record exists or its TTL
// has elapsed.
func (c *Cache) CurrentIsExpired() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.data.CurrentAddress == nil {
		return true
	}

	return c.data.CurrentAddress.IsExpired()
}

// TargetIsExpired is true when no record exists for the address or its TTL
// has elapsed.
func (c *Cache) TargetIsExpired(target net.IP) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	record, ok := c.data.LookupAddress[target.String()]
	if !ok {
		return true
	}

	return record.IsExpired()
}

// DefaultCacheDir resolves the directory for the cache file: the platform
// cache directory, then the user configuration directory, then home, then
// the process working directory. The first candidate that exists or can be
// created wins. No hidden global: callers thread the result (or their own
// override) through CacheOptions.
func DefaultCacheDir(fs afero.Fs) string {
	candidates := []func() (string, error){
		os.UserCacheDir,
		os.UserConfigDir,
		os.UserHomeDir,
	}

	for _, v := range candidates {
		dir, err := v()
		if err != nil || dir == "" {
			continue
		}

		if err := fs.MkdirAll(dir, 0o755); err == nil {
			return dir
		}
	}

	return "."
}
