// Package sim is an in-memory hal.Runtime with a handful of logic
// components, each thread is a goroutine driven by a ticker.
package sim

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	machinetalk "github.com/machinekit/go-machinetalk"
	"github.com/machinekit/go-machinetalk/hal"
)

type funct struct {
	name   string
	update func()
	thread string
}

type thread struct {
	name   string
	period time.Duration
	useFP  bool
	functs []*funct

	stop chan struct{}
	done chan struct{}
}

type Runtime struct {
	log machinetalk.Logger

	lock    sync.Mutex
	comps   map[string][]string // component -> functs of its instances
	pins    map[string]*pin
	functs  map[string]*funct
	threads map[string]*thread
	running bool
}

func NewRuntime(log machinetalk.Logger) *Runtime {
	return &Runtime{
		log:     log,
		comps:   map[string][]string{},
		pins:    map[string]*pin{},
		functs:  map[string]*funct{},
		threads: map[string]*thread{},
	}
}

// Components lists the component names LoadRT accepts.
func Components() []string {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Runtime) LoadRT(comp string) error {
	def, ok := components[comp]
	if !ok {
		return fmt.Errorf("%w: component %s", hal.ErrNotFound, comp)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.comps[comp]; ok {
		return fmt.Errorf("%w: component %s", hal.ErrExists, comp)
	}

	prefix := comp + ".0"
	instPins := make(pins, len(def.pins))
	for _, pd := range def.pins {
		p := &pin{name: prefix + "." + pd.suffix, typ: pd.typ, dir: pd.dir}
		instPins[pd.suffix] = p
		r.pins[p.name] = p
	}

	r.functs[prefix] = &funct{name: prefix, update: func() { def.update(instPins) }}
	r.comps[comp] = []string{prefix}

	r.log.Debugf("loaded component %s", comp)
	return nil
}

func (r *Runtime) UnloadRT(comp string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	functs, ok := r.comps[comp]
	if !ok {
		return fmt.Errorf("%w: component %s", hal.ErrNotFound, comp)
	}

	for _, name := range functs {
		if f := r.functs[name]; f.thread != "" {
			return fmt.Errorf("%w: function %s still in thread %s", hal.ErrBusy, name, f.thread)
		}
	}

	for _, name := range functs {
		delete(r.functs, name)
		for pinName := range r.pins {
			if strings.HasPrefix(pinName, name+".") {
				delete(r.pins, pinName)
			}
		}
	}

	delete(r.comps, comp)
	r.log.Debugf("unloaded component %s", comp)
	return nil
}

func (r *Runtime) NewThread(name string, period time.Duration, useFP bool) error {
	if period <= 0 {
		return fmt.Errorf("invalid thread period %s", period)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.threads[name]; ok {
		return fmt.Errorf("%w: thread %s", hal.ErrExists, name)
	}

	t := &thread{name: name, period: period, useFP: useFP}
	r.threads[name] = t
	if r.running {
		r.startThread(t)
	}

	return nil
}

func (r *Runtime) DelThread(name string) error {
	r.lock.Lock()
	t, ok := r.threads[name]
	if !ok {
		r.lock.Unlock()
		return fmt.Errorf("%w: thread %s", hal.ErrNotFound, name)
	} else if len(t.functs) > 0 {
		r.lock.Unlock()
		return fmt.Errorf("%w: thread %s has %d functions", hal.ErrBusy, name, len(t.functs))
	}

	delete(r.threads, name)
	stop, done := t.detach()
	r.lock.Unlock()

	waitThread(stop, done)
	return nil
}

func (r *Runtime) AddF(functName, threadName string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	f, ok := r.functs[functName]
	if !ok {
		return fmt.Errorf("%w: function %s", hal.ErrNotFound, functName)
	}

	t, ok := r.threads[threadName]
	if !ok {
		return fmt.Errorf("%w: thread %s", hal.ErrNotFound, threadName)
	}

	if f.thread != "" {
		return fmt.Errorf("%w: function %s already in thread %s", hal.ErrBusy, functName, f.thread)
	}

	f.thread = threadName
	t.functs = append(t.functs, f)
	return nil
}

func (r *Runtime) DelF(functName, threadName string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	t, ok := r.threads[threadName]
	if !ok {
		return fmt.Errorf("%w: thread %s", hal.ErrNotFound, threadName)
	}

	for i, f := range t.functs {
		if f.name == functName {
			f.thread = ""
			t.functs = append(t.functs[:i:i], t.functs[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("%w: function %s in thread %s", hal.ErrNotFound, functName, threadName)
}

func (r *Runtime) StartThreads() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.running {
		return nil
	}

	r.running = true
	for _, t := range r.threads {
		r.startThread(t)
	}

	return nil
}

func (r *Runtime) StopThreads() error {
	r.lock.Lock()
	r.running = false
	var stops, dones []chan struct{}
	for _, t := range r.threads {
		stop, done := t.detach()
		stops, dones = append(stops, stop), append(dones, done)
	}
	r.lock.Unlock()

	for i := range stops {
		waitThread(stops[i], dones[i])
	}

	return nil
}

func (r *Runtime) Pin(name string) (hal.Pin, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	p, ok := r.pins[name]
	if !ok {
		return nil, fmt.Errorf("%w: pin %s", hal.ErrNotFound, name)
	}

	return p, nil
}

func (r *Runtime) CheckClean() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if len(r.comps) > 0 || len(r.threads) > 0 || len(r.functs) > 0 || len(r.pins) > 0 {
		return fmt.Errorf("%w: %d components, %d threads, %d functions, %d pins left",
			hal.ErrNotClean, len(r.comps), len(r.threads), len(r.functs), len(r.pins))
	}

	return nil
}

// startThread must be called with the lock held.
func (r *Runtime) startThread(t *thread) {
	if t.stop != nil {
		return
	}

	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go r.runThread(t, t.stop, t.done)
}

func (r *Runtime) runThread(t *thread, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	r.log.Tracef("thread %s running every %s (fp: %t)", t.name, t.period, t.useFP)

	var functs []*funct
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.lock.Lock()
			functs = append(functs[:0], t.functs...)
			r.lock.Unlock()

			for _, f := range functs {
				f.update()
			}
		}
	}
}

// detach must be called with the lock held, the returned channels are
// handed to waitThread once the lock is released.
func (t *thread) detach() (stop, done chan struct{}) {
	stop, done = t.stop, t.done
	t.stop, t.done = nil, nil
	return stop, done
}

func waitThread(stop, done chan struct{}) {
	if stop == nil {
		return
	}

	close(stop)
	<-done
}
