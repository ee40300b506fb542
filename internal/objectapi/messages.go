package objectapi

import "github.com/roboticsfoundry/physics-control-plane/model"

// Request and response messages for the object service. They travel over
// gRPC with the JSON codec (see grpc.go), so the json tags are the wire
// contract.
//
// Every response carries success, a human-readable message, and on failure a
// stable machine-readable code; failed responses never populate payload
// fields.

// AddObjectRequest creates one object from either a config file on the
// server's filesystem or an inline YAML config. Exactly one source must be
// set.
type AddObjectRequest struct {
	KindCode     int    `json:"kind_code"`
	Filename     string `json:"filename,omitempty"`
	InlineConfig string `json:"inline_config,omitempty"`
}

// AddObjectResponse reports the outcome of an add.
type AddObjectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// RemoveObjectRequest destroys and unregisters the named object.
type RemoveObjectRequest struct {
	Name string `json:"name"`
}

// RemoveObjectResponse reports the outcome of a remove.
type RemoveObjectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// GetDynamicsRequest reads one link's dynamics properties.
type GetDynamicsRequest struct {
	ObjectName string `json:"object_name"`
	LinkIndex  int    `json:"link_index"`
}

// GetDynamicsResponse carries the dynamics snapshot on success.
type GetDynamicsResponse struct {
	Success  bool                      `json:"success"`
	Message  string                    `json:"message"`
	Code     string                    `json:"code,omitempty"`
	Dynamics *model.DynamicsProperties `json:"dynamics,omitempty"`
}

// ChangeDynamicsRequest applies a partial dynamics update to one link.
// Fields absent from the update are left untouched.
type ChangeDynamicsRequest struct {
	ObjectName string               `json:"object_name"`
	LinkIndex  int                  `json:"link_index"`
	Dynamics   model.DynamicsUpdate `json:"dynamics"`
}

// ChangeDynamicsResponse reports the outcome of a dynamics write.
type ChangeDynamicsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// GetPositionRequest reads the named object's base pose. This is a pure
// read; it never mutates the pose.
type GetPositionRequest struct {
	ObjectName string `json:"object_name"`
	LinkIndex  int    `json:"link_index"`
}

// GetPositionResponse carries the pose on success.
type GetPositionResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Code        string      `json:"code,omitempty"`
	Position    *model.Vec3 `json:"position,omitempty"`
	Orientation *model.Quat `json:"orientation,omitempty"`
}
