package env

import (
	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

// DeviceID derives a stable ID from the machine ID. A random ID is used
// when the machine ID is not readable, it won't survive a restart.
func DeviceID() string {
	id, err := machineid.ProtectedID("axon")
	if err != nil {
		glog.Warningf("machine id unavailable, using a random device id: %v", err)
		return uuid.NewString()
	}
	return id[:16]
}
