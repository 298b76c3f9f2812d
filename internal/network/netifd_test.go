package network

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ubusList = `network.interface
network.interface.lan
network.interface.loopback
network.interface.wan
network.interface.wan6
`

func TestNetifd_List(t *testing.T) {
	exec := new(MockCommandExecutor)
	exec.On("RunCommand", "ubus", "list", "network.interface.*").Return(ubusList, nil)

	names, err := NewNetifd(exec, exec).List("loopback")
	require.NoError(t, err)
	assert.Equal(t, []string{"lan", "wan", "wan6"}, names)
}

func TestNetifd_Status(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		up     bool
		device string
	}{
		{
			name:   "pppoe prefers l3 device",
			reply:  `{"up": true, "pending": false, "l3_device": "pppoe-wan", "device": "eth0.2"}`,
			up:     true,
			device: "pppoe-wan",
		},
		{
			name:   "dhcp without l3 device",
			reply:  `{"up": false, "device": "eth1"}`,
			up:     false,
			device: "eth1",
		},
		{
			name:  "unbound",
			reply: `{"up": false}`,
		},
		{
			name:   "warning around the object",
			reply:  "ubus: warning: slow reply\n{\"up\": true, \"l3_device\": \"eth1\"}\ntrailing note\n",
			up:     true,
			device: "eth1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := new(MockCommandExecutor)
			exec.On("RunCommand", "ubus", "call", "network.interface.wan", "status").Return(tt.reply, nil)

			st, err := NewNetifd(exec, exec).Status("wan")
			require.NoError(t, err)
			assert.Equal(t, tt.up, st.Up)
			assert.Equal(t, tt.device, st.Device)
		})
	}
}

func TestNetifd_StatusErrors(t *testing.T) {
	exec := new(MockCommandExecutor)
	exec.On("RunCommand", "ubus", "call", "network.interface.wan", "status").Return("", errors.New("Not found"))
	exec.On("RunCommand", "ubus", "call", "network.interface.lan", "status").Return("garbage", nil)

	n := NewNetifd(exec, exec)
	_, err := n.Status("wan")
	assert.ErrorContains(t, err, "netifd status wan")
	_, err = n.Status("lan")
	assert.ErrorContains(t, err, "invalid reply")
}

func TestNetifd_ControlUsesControlExecutor(t *testing.T) {
	query := new(MockCommandExecutor)
	control := NewDryRunExecutor()

	n := NewNetifd(query, control)
	require.NoError(t, n.Down("wan"))
	require.NoError(t, n.Up("wan"))

	assert.Equal(t, []string{"ifdown wan", "ifup wan"}, control.Recorded())
	query.AssertNotCalled(t, "RunCommand")
}

func TestNetifd_ControlError(t *testing.T) {
	exec := new(MockCommandExecutor)
	exec.On("RunCommand", "ifdown", "wan").Return("", errors.New("exit status 1"))

	err := NewNetifd(exec, exec).Down("wan")
	assert.ErrorContains(t, err, "ifdown wan")
}
