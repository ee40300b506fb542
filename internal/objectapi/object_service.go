// internal/objectapi/object_service.go
package objectapi

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/roboticsfoundry/physics-control-plane/internal/config"
	"github.com/roboticsfoundry/physics-control-plane/internal/logging"
	sim "github.com/roboticsfoundry/physics-control-plane/internal/sim/state"
	"github.com/roboticsfoundry/physics-control-plane/model"
)

// ConfigLoader is the narrow surface of the config collaborator used by
// AddObject: file-based loading and inline parsing.
type ConfigLoader interface {
	LoadFile(path string) (*model.ObjectConfig, error)
	Parse(data []byte) (*model.ObjectConfig, error)
}

type fileLoader struct{}

func (fileLoader) LoadFile(path string) (*model.ObjectConfig, error) {
	return config.LoadObject(path)
}

func (fileLoader) Parse(data []byte) (*model.ObjectConfig, error) {
	return config.ParseObject(data)
}

// ObjectService implements the object control-plane RPC surface backed by a
// WorldState instance. All expected failures are converted into
// success=false responses at this boundary; handlers never panic a request
// goroutine and never leak a half-registered object.
type ObjectService struct {
	state  *sim.WorldState
	loader ConfigLoader
	log    logging.Logger
}

// NewObjectService constructs an ObjectService bound to WorldState. A nil
// loader defaults to the YAML file/inline loader.
func NewObjectService(state *sim.WorldState, loader ConfigLoader, log logging.Logger) *ObjectService {
	if loader == nil {
		loader = fileLoader{}
	}
	if log == nil {
		log = logging.Noop()
	}
	return &ObjectService{
		state:  state,
		loader: loader,
		log:    log,
	}
}

// AddObject constructs and registers one object. The kind code is resolved
// against the closed mapping before anything else; no construction is
// attempted for unrecognized codes.
func (s *ObjectService) AddObject(ctx context.Context, req *AddObjectRequest) (*AddObjectResponse, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	fail := func(code string, err error) (*AddObjectResponse, error) {
		s.logFailure(ctx, "AddObject", code, err)
		return &AddObjectResponse{Message: err.Error(), Code: code}, nil
	}

	kind, ok := model.KindFromCode(req.KindCode)
	if !ok {
		return fail(CodeUnrecognizedKind,
			fmt.Errorf("did not recognize object kind code %d, expected 0-5", req.KindCode))
	}

	var (
		cfg *model.ObjectConfig
		err error
	)
	switch {
	case req.Filename != "" && req.InlineConfig != "":
		return fail(CodeMissingConfigSource,
			fmt.Errorf("exactly one of filename or inline_config must be given, got both"))
	case req.Filename != "":
		cfg, err = s.loader.LoadFile(req.Filename)
	case req.InlineConfig != "":
		cfg, err = s.loader.Parse([]byte(req.InlineConfig))
	default:
		return fail(CodeMissingConfigSource,
			fmt.Errorf("neither filename nor inline_config was given"))
	}
	if err != nil {
		return fail(CodeConfigLoadError, err)
	}

	name, err := s.state.AddObject(cfg, kind)
	if err != nil {
		return fail(CodeForError(err, CodeBackendConstructError), err)
	}

	return &AddObjectResponse{
		Success: true,
		Message: fmt.Sprintf("added %s object %q", kind, name),
	}, nil
}

// RemoveObject destroys and unregisters the named object.
func (s *ObjectService) RemoveObject(ctx context.Context, req *RemoveObjectRequest) (*RemoveObjectResponse, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if req == nil || req.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}

	if err := s.state.RemoveObject(req.Name); err != nil {
		code := CodeForError(err, CodeBackendCallError)
		s.logFailure(ctx, "RemoveObject", code, err)
		return &RemoveObjectResponse{Message: err.Error(), Code: code}, nil
	}

	return &RemoveObjectResponse{
		Success: true,
		Message: fmt.Sprintf("removed object %q", req.Name),
	}, nil
}

// GetDynamics reads one link's dynamics snapshot.
func (s *ObjectService) GetDynamics(ctx context.Context, req *GetDynamicsRequest) (*GetDynamicsResponse, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if req == nil || req.ObjectName == "" {
		return nil, status.Error(codes.InvalidArgument, "object_name is required")
	}

	props, err := s.state.ObjectDynamics(req.ObjectName, req.LinkIndex)
	if err != nil {
		code := CodeForError(err, CodeBackendCallError)
		s.logFailure(ctx, "GetDynamics", code, err)
		return &GetDynamicsResponse{Message: err.Error(), Code: code}, nil
	}

	return &GetDynamicsResponse{
		Success:  true,
		Message:  fmt.Sprintf("got dynamics of object %q link %d", req.ObjectName, req.LinkIndex),
		Dynamics: &props,
	}, nil
}

// ChangeDynamics applies a partial dynamics update to one link.
func (s *ObjectService) ChangeDynamics(ctx context.Context, req *ChangeDynamicsRequest) (*ChangeDynamicsResponse, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if req == nil || req.ObjectName == "" {
		return nil, status.Error(codes.InvalidArgument, "object_name is required")
	}

	if err := s.state.ChangeObjectDynamics(req.ObjectName, req.LinkIndex, req.Dynamics); err != nil {
		code := CodeForError(err, CodeBackendCallError)
		s.logFailure(ctx, "ChangeDynamics", code, err)
		return &ChangeDynamicsResponse{Message: err.Error(), Code: code}, nil
	}

	return &ChangeDynamicsResponse{
		Success: true,
		Message: fmt.Sprintf("changed dynamics of object %q link %d", req.ObjectName, req.LinkIndex),
	}, nil
}

// GetPosition reads the named object's base pose. A pure read: the pose is
// never touched.
func (s *ObjectService) GetPosition(ctx context.Context, req *GetPositionRequest) (*GetPositionResponse, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if req == nil || req.ObjectName == "" {
		return nil, status.Error(codes.InvalidArgument, "object_name is required")
	}

	pose, err := s.state.ObjectPose(req.ObjectName)
	if err != nil {
		code := CodeForError(err, CodeBackendCallError)
		s.logFailure(ctx, "GetPosition", code, err)
		return &GetPositionResponse{Message: err.Error(), Code: code}, nil
	}

	return &GetPositionResponse{
		Success:     true,
		Message:     fmt.Sprintf("got position of object %q", req.ObjectName),
		Position:    &pose.Position,
		Orientation: &pose.Orientation,
	}, nil
}

func (s *ObjectService) ensureReady() error {
	if s == nil || s.state == nil {
		return status.Error(codes.FailedPrecondition, "world state is not configured")
	}
	return nil
}

// logFailure records a failed operation with its origin error, preferring
// the request-scoped logger when the interceptor installed one.
func (s *ObjectService) logFailure(ctx context.Context, op, code string, err error) {
	log := logging.LoggerFromContext(ctx)
	if log == nil {
		log = s.log
	}
	log.Error(ctx, "request failed",
		logging.String("op", op),
		logging.String("code", code),
		logging.Err(err),
	)
}
