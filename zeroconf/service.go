package zeroconf

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	machinetalk "github.com/machinekit/go-machinetalk"
)

const DefaultAnnounceFormat = "MK " + PlaceholderName + " on " + PlaceholderHostname

var (
	ErrInvalidOptions   = errors.New("invalid service options")
	ErrLabelTooLong     = errors.New("dns announcement label too long")
	ErrNotPublished     = errors.New("service not published")
	ErrAlreadyPublished = errors.New("service already published")
)

// State is the publication state of a Service.
type State int

const (
	StateUnpublished State = iota
	StatePublished
)

func (s State) String() string {
	switch s {
	case StateUnpublished:
		return "unpublished"
	case StatePublished:
		return "published"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type ServiceOptions struct {
	// Type is the machinekit service tag, e.g. "config" or "halrcomp".
	Type string
	// ServiceUUID identifies the installation the service belongs to.
	ServiceUUID string
	// DSN is the endpoint clients should connect to.
	DSN  string
	Port int

	// Name defaults to the title-cased Type.
	Name string
	// Host is the target host of the record, the daemon picks its own
	// host name when empty.
	Host string
	// AnnounceFormat is rendered into the headline unless Headline is set.
	AnnounceFormat string
	Headline       string
	Domain         string

	Loopback bool
	Protocol Protocol
}

// Service announces one machinekit service through a Registrar.
type Service struct {
	log       machinetalk.Logger
	registrar Registrar

	// record holds the construction-time rendering, {fqdn} still unbound.
	record     ServiceRecord
	instanceId uuid.UUID

	mu        sync.Mutex
	state     State
	group     EntryGroup
	published ServiceRecord

	onStateChange func(old, new State)
}

func NewService(log machinetalk.Logger, registrar Registrar, opts ServiceOptions) (*Service, error) {
	if len(opts.Type) == 0 {
		return nil, fmt.Errorf("%w: missing service type", ErrInvalidOptions)
	} else if len(opts.ServiceUUID) == 0 {
		return nil, fmt.Errorf("%w: missing service uuid", ErrInvalidOptions)
	} else if opts.Port <= 0 || opts.Port > 65535 {
		return nil, fmt.Errorf("%w: invalid port %d", ErrInvalidOptions, opts.Port)
	} else if registrar == nil {
		return nil, fmt.Errorf("%w: missing registrar", ErrInvalidOptions)
	}

	protocol, err := ParseProtocol(string(opts.Protocol))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	// uuid1, a time and node based id unique to this process
	instanceId, err := uuid.NewUUID()
	if err != nil {
		return nil, fmt.Errorf("failed generating instance id: %w", err)
	}

	name := opts.Name
	if len(name) == 0 {
		name = machinetalk.TitleCase(opts.Type)
	}

	headline := opts.Headline
	if len(headline) == 0 {
		format := opts.AnnounceFormat
		if len(format) == 0 {
			format = DefaultAnnounceFormat
		}

		hostname := opts.Host
		if len(hostname) == 0 {
			hostname = PlaceholderFqdn
		}

		headline = MultiReplace(format, map[string]string{
			PlaceholderUUID:     opts.ServiceUUID,
			PlaceholderHostname: hostname,
			PlaceholderName:     name,
			PlaceholderType:     opts.Type,
		}, true)
	}

	if err := checkLabel(headline); err != nil {
		return nil, err
	}

	s := &Service{
		log:        log.WithField("service", opts.Type),
		registrar:  registrar,
		instanceId: instanceId,
		record: ServiceRecord{
			Name:     headline,
			Type:     ServiceType,
			Subtype:  Subtype(opts.Type),
			Domain:   opts.Domain,
			Host:     opts.Host,
			Port:     opts.Port,
			Text:     BuildTXT(opts.DSN, opts.ServiceUUID, instanceId.String(), opts.Type),
			Loopback: opts.Loopback,
			Protocol: protocol,
		},
	}

	s.log.Debugf("service dsn = %s port = %d txt = %v name = %s", opts.DSN, opts.Port, s.record.Text, name)
	return s, nil
}

// checkLabel rejects headlines that do not fit a single DNS label. Headlines
// with an unbound {fqdn} are checked again once it is bound.
func checkLabel(headline string) error {
	if len(headline) > maxDNSLabelBytes {
		return fmt.Errorf("%w: '%s' length: %d", ErrLabelTooLong, headline, len(headline))
	}
	return nil
}

// InstanceId is the id announced in the instance= text record.
func (s *Service) InstanceId() string {
	return s.instanceId.String()
}

// Record returns the published record if the service is published, or the
// record as rendered at construction otherwise.
func (s *Service) Record() ServiceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.record
	if s.state == StatePublished {
		rec = s.published
	}

	rec.Text = append([]string(nil), rec.Text...)
	return rec
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnStateChange sets a callback invoked after every state transition. It is
// called with the service locked and must not call back into it.
func (s *Service) OnStateChange(fn func(old, new State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStateChange = fn
}

func (s *Service) setState(state State) {
	old := s.state
	s.state = state
	if s.onStateChange != nil && old != state {
		s.onStateChange(old, state)
	}
}

// bind resolves the publish-time placeholders of the construction-time record.
func (s *Service) bind(fqdn string) ServiceRecord {
	replacements := map[string]string{PlaceholderFqdn: fqdn}

	rec := s.record
	rec.Name = MultiReplace(rec.Name, replacements, false)
	rec.Text = make([]string, len(s.record.Text))
	for i, t := range s.record.Text {
		rec.Text[i] = MultiReplace(t, replacements, false)
	}

	return rec
}

// Publish registers the service with the daemon. Daemon errors are returned
// as they are, no retry is attempted.
func (s *Service) Publish(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StatePublished {
		return ErrAlreadyPublished
	}

	fqdn, err := s.registrar.HostNameFqdn(ctx)
	if err != nil {
		return fmt.Errorf("failed getting host name: %w", err)
	}

	rec := s.bind(fqdn)
	if err := checkLabel(rec.Name); err != nil {
		return err
	}

	group, err := s.registrar.EntryGroupNew(ctx)
	if err != nil {
		return fmt.Errorf("failed creating entry group: %w", err)
	}

	if err := s.fill(ctx, group, rec); err != nil {
		if resetErr := group.Reset(ctx); resetErr != nil {
			s.log.WithError(resetErr).Warn("failed resetting entry group after publish error")
		}
		s.free(ctx, group)
		return err
	}

	s.group = group
	s.published = rec
	s.setState(StatePublished)

	s.log.Infof("published %s as '%s' on port %d", rec.Subtype, rec.Name, rec.Port)
	return nil
}

func (s *Service) fill(ctx context.Context, group EntryGroup, rec ServiceRecord) error {
	if err := group.AddService(ctx, rec); err != nil {
		return fmt.Errorf("failed adding service: %w", err)
	}

	if len(rec.Subtype) > 0 {
		if err := group.AddServiceSubtype(ctx, rec, rec.Subtype); err != nil {
			return fmt.Errorf("failed adding service subtype: %w", err)
		}
	}

	if err := group.Commit(ctx); err != nil {
		return fmt.Errorf("failed committing entry group: %w", err)
	}

	return nil
}

// Unpublish retracts a previously published service.
func (s *Service) Unpublish(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePublished {
		return ErrNotPublished
	}

	if err := s.group.Reset(ctx); err != nil {
		return fmt.Errorf("failed resetting entry group: %w", err)
	}

	// the records are already retracted, a group left behind is not fatal
	s.free(ctx, s.group)

	s.group = nil
	s.published = ServiceRecord{}
	s.setState(StateUnpublished)

	s.log.Infof("unpublished %s", s.record.Subtype)
	return nil
}

func (s *Service) free(ctx context.Context, group EntryGroup) {
	if err := group.Free(ctx); err != nil {
		s.log.WithError(err).Warn("failed freeing entry group")
	}
}
