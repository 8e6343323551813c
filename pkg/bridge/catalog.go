package bridge

import (
	"context"
	"fmt"
	"sort"

	serviceErrs "github.com/kubev2v/node-inspector/pkg/errors"
)

// Probe is a named, pinned request against the agent. A probe without an
// operation is a read.
type Probe struct {
	Name      string
	Address   ObjectAddress
	Operation string
}

const (
	ProbeMemory            = "memory"
	ProbeOperatingSystem   = "operatingSystem"
	ProbeRuntime           = "runtime"
	ProbeThreading         = "threading"
	ProbeClassLoading      = "classLoading"
	ProbeGarbageCollectors = "garbageCollectors"
	ProbeFlowsInFlight     = "flowsInFlight"
	ProbeFlowsStarted      = "flowsStarted"
	ProbeFlowsFinished     = "flowsFinished"
	ProbeCheckpointingRate = "checkpointingRate"
	ProbeRPCServerBrowse   = "rpcServerBrowse"
	ProbeP2PInboundBrowse  = "p2pInboundBrowse"
)

var probes = map[string]Probe{
	ProbeMemory:            {Address: "java.lang:type=Memory"},
	ProbeOperatingSystem:   {Address: "java.lang:type=OperatingSystem"},
	ProbeRuntime:           {Address: "java.lang:type=Runtime"},
	ProbeThreading:         {Address: "java.lang:type=Threading"},
	ProbeClassLoading:      {Address: "java.lang:type=ClassLoading"},
	ProbeGarbageCollectors: {Address: "java.lang:type=GarbageCollector,name=*"},
	ProbeFlowsInFlight:     {Address: "net.corda:type=Flows,name=InFlight"},
	ProbeFlowsStarted:      {Address: "net.corda:type=Flows,name=Started"},
	ProbeFlowsFinished:     {Address: "net.corda:type=Flows,name=Finished"},
	ProbeCheckpointingRate: {Address: "net.corda:type=Flows,name=Checkpointing Rate"},
	ProbeRPCServerBrowse: {
		Address:   "org.apache.activemq.artemis:broker=\"RPC\",component=addresses,address=\"rpc.server\",subcomponent=queues,routing-type=\"multicast\",queue=\"rpc.server\"",
		Operation: "browse()",
	},
	ProbeP2PInboundBrowse: {
		Address:   "org.apache.activemq.artemis:broker=\"P2P\",component=addresses,address=\"p2p.inbound\",subcomponent=queues,routing-type=\"multicast\",queue=\"p2p.inbound\"",
		Operation: "browse()",
	},
}

// Catalog returns every known probe sorted by name.
func Catalog() []Probe {
	result := make([]Probe, 0, len(probes))
	for name, p := range probes {
		p.Name = name
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// LookupProbe returns the probe registered under name.
func LookupProbe(name string) (Probe, error) {
	p, ok := probes[name]
	if !ok {
		return Probe{}, serviceErrs.NewConfigurationError("bridge.probe", fmt.Sprintf("unknown probe %q", name))
	}
	p.Name = name
	return p, nil
}

// Probe runs the named probe.
func (c *Client) Probe(ctx context.Context, name string) (*Response, error) {
	p, err := LookupProbe(name)
	if err != nil {
		return nil, err
	}
	if p.Operation != "" {
		return c.Execute(ctx, p.Address, p.Operation)
	}
	return c.Read(ctx, p.Address)
}

func (c *Client) Memory(ctx context.Context) (*Response, error) {
	return c.Probe(ctx, ProbeMemory)
}

func (c *Client) OperatingSystem(ctx context.Context) (*Response, error) {
	return c.Probe(ctx, ProbeOperatingSystem)
}

func (c *Client) FlowsInFlight(ctx context.Context) (*Response, error) {
	return c.Probe(ctx, ProbeFlowsInFlight)
}

func (c *Client) RPCServerBrowse(ctx context.Context) (*Response, error) {
	return c.Probe(ctx, ProbeRPCServerBrowse)
}
