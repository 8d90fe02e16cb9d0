package nodeconfig

import "testing"

func TestNewDefaultsNodeAddr(t *testing.T) {
	c := New()
	if c.GetNodeAddr() != defaultNodeAddr {
		t.Fatalf("GetNodeAddr() = %q; want %q", c.GetNodeAddr(), defaultNodeAddr)
	}
	if c.IsMiner() {
		t.Fatal("fresh config must not be a miner")
	}
}

func TestSetMiningAddr(t *testing.T) {
	c := New()
	c.SetMiningAddr("miner-address")

	addr, ok := c.GetMiningAddr()
	if !ok || addr != "miner-address" {
		t.Fatalf("GetMiningAddr() = %q, %v; want miner-address, true", addr, ok)
	}
	if !c.IsMiner() {
		t.Fatal("expected IsMiner() to be true after SetMiningAddr")
	}
}

func TestNodeAddrEnvOverride(t *testing.T) {
	t.Setenv(nodeAddressEnvVar, "10.0.0.1:3000")
	c := New()
	if c.GetNodeAddr() != "10.0.0.1:3000" {
		t.Fatalf("GetNodeAddr() = %q; want 10.0.0.1:3000", c.GetNodeAddr())
	}
}
