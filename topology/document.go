package topology

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

const ComposeVersion = "3"

type EnvVar struct {
	Name  string
	Value string
}

type Service struct {
	Image         string
	ContainerName string
	Command       []string
	Restart       string
	CapAdd        []string
	Ports         []string
	Expose        []string
	Volumes       []string
	DependsOn     []string
	Networks      []string
	// Addresses pins the service to a static IPv4 address on a network.
	Addresses   map[string]string
	DNS         []string
	Environment []EnvVar
}

// Env returns the value of an environment variable of the service.
func (s *Service) Env(name string) (string, bool) {
	for _, e := range s.Environment {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

func (s *Service) SetEnv(name, value string) {
	for i := range s.Environment {
		if s.Environment[i].Name == name {
			s.Environment[i].Value = value
			return
		}
	}
	s.Environment = append(s.Environment, EnvVar{Name: name, Value: value})
}

// Resource is a network or volume declaration. External resources are
// shared between environments and referenced by name.
type Resource struct {
	External bool
	Name     string
}

type named struct {
	name     string
	service  *Service
	resource *Resource
}

// Document is a compose file whose services, networks and volumes keep the
// order in which fragments added them.
type Document struct {
	Version string
	// RoutingConfig is the nginx file mounted into the web tier.
	RoutingConfig string

	services []named
	networks []named
	volumes  []named
}

func NewDocument() *Document {
	return &Document{Version: ComposeVersion}
}

func (d *Document) Service(name string) *Service {
	for _, s := range d.services {
		if s.name == name {
			return s.service
		}
	}
	return nil
}

// AddService appends a service, replacing an existing one in place.
func (d *Document) AddService(name string, svc *Service) {
	d.services = upsert(d.services, named{name: name, service: svc})
}

func (d *Document) AddNetwork(name string, r *Resource) {
	d.networks = upsert(d.networks, named{name: name, resource: r})
}

func (d *Document) AddVolume(name string, r *Resource) {
	d.volumes = upsert(d.volumes, named{name: name, resource: r})
}

func (d *Document) ServiceNames() []string {
	return names(d.services)
}

func (d *Document) NetworkNames() []string {
	return names(d.networks)
}

func (d *Document) VolumeNames() []string {
	return names(d.volumes)
}

func (d *Document) Volume(name string) *Resource {
	for _, v := range d.volumes {
		if v.name == name {
			return v.resource
		}
	}
	return nil
}

func upsert(list []named, item named) []named {
	for i := range list {
		if list[i].name == item.name {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func names(list []named) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.name
	}
	return out
}

// Marshal renders the document as YAML. Equal documents give equal bytes.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) MarshalYAML() (interface{}, error) {
	root := mapping()
	appendPair(root, "version", scalar(d.Version))

	services := mapping()
	for _, s := range d.services {
		appendPair(services, s.name, s.service.node())
	}
	appendPair(root, "services", services)

	if len(d.networks) > 0 {
		appendPair(root, "networks", resources(d.networks))
	}
	if len(d.volumes) > 0 {
		appendPair(root, "volumes", resources(d.volumes))
	}
	return root, nil
}

func (s *Service) node() *yaml.Node {
	n := mapping()
	appendPair(n, "image", scalar(s.Image))
	if s.ContainerName != "" {
		appendPair(n, "container_name", scalar(s.ContainerName))
	}
	appendList(n, "command", s.Command)
	if s.Restart != "" {
		appendPair(n, "restart", scalar(s.Restart))
	}
	appendList(n, "cap_add", s.CapAdd)
	appendList(n, "ports", s.Ports)
	appendList(n, "expose", s.Expose)
	appendList(n, "volumes", s.Volumes)
	appendList(n, "depends_on", s.DependsOn)
	if len(s.Addresses) > 0 {
		appendPair(n, "networks", s.networksNode())
	} else {
		appendList(n, "networks", s.Networks)
	}
	appendList(n, "dns", s.DNS)
	if len(s.Environment) > 0 {
		env := mapping()
		for _, e := range s.Environment {
			appendPair(env, e.Name, scalar(e.Value))
		}
		appendPair(n, "environment", env)
	}
	return n
}

// networksNode is the long networks form, needed once any address is pinned.
// Networks keep their declared order.
func (s *Service) networksNode() *yaml.Node {
	n := mapping()
	for _, name := range s.Networks {
		attach := mapping()
		if addr, ok := s.Addresses[name]; ok {
			appendPair(attach, "ipv4_address", scalar(addr))
		}
		appendPair(n, name, attach)
	}
	return n
}

func resources(list []named) *yaml.Node {
	n := mapping()
	for _, item := range list {
		decl := mapping()
		if item.resource.External {
			ext := mapping()
			appendPair(ext, "name", scalar(item.resource.Name))
			appendPair(decl, "external", ext)
		}
		appendPair(n, item.name, decl)
	}
	return n
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}

func appendList(m *yaml.Node, key string, values []string) {
	if len(values) == 0 {
		return
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, scalar(v))
	}
	appendPair(m, key, seq)
}
