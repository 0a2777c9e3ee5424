package fsys

import (
	"sync"

	"github.com/lemmego/appkit/config"
)

// Disks caches the drivers resolved by name so every caller asking for the
// same disk shares one instance, which matters for the memory disk.
type Disks struct {
	mu    sync.Mutex
	disks map[string]FS
}

// NewDisks creates a disk manager with an empty cache.
func NewDisks() *Disks {
	return &Disks{disks: map[string]FS{}}
}

var defaultDisks = NewDisks()

// Disk returns the named disk, or storage.disk when no name is given.
func (d *Disks) Disk(diskName ...string) (FS, error) {
	name := ""
	if len(diskName) > 0 {
		name = diskName[0]
	}
	if name == "" {
		name = config.String("storage.disk", "local")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if fs, ok := d.disks[name]; ok {
		return fs, nil
	}

	fs, err := Driver(name)
	if err != nil {
		return nil, err
	}
	d.disks[name] = fs
	return fs, nil
}

// Forget drops a cached disk so the next Disk call resolves it again
func (d *Disks) Forget(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.disks, name)
}

// Disk returns a disk from the process wide cache
func Disk(diskName ...string) (FS, error) {
	return defaultDisks.Disk(diskName...)
}

// Forget drops a disk from the process wide cache
func Forget(name string) {
	defaultDisks.Forget(name)
}
