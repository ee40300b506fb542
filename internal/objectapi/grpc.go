// internal/objectapi/grpc.go
//
// gRPC wiring for the object service. The messages in messages.go are plain
// JSON-tagged structs, so instead of generated protobuf stubs the service is
// registered through a hand-rolled grpc.ServiceDesc and a JSON codec; the
// handler and client shapes follow the usual generated-code layout.
package objectapi

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype used by the object service.
const CodecName = "json"

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "physics.v1.ObjectService"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return CodecName }

// ObjectServiceServer is the server surface of the object service.
type ObjectServiceServer interface {
	AddObject(context.Context, *AddObjectRequest) (*AddObjectResponse, error)
	RemoveObject(context.Context, *RemoveObjectRequest) (*RemoveObjectResponse, error)
	GetDynamics(context.Context, *GetDynamicsRequest) (*GetDynamicsResponse, error)
	ChangeDynamics(context.Context, *ChangeDynamicsRequest) (*ChangeDynamicsResponse, error)
	GetPosition(context.Context, *GetPositionRequest) (*GetPositionResponse, error)
}

// RegisterObjectServiceServer registers the object service implementation
// with a gRPC server.
func RegisterObjectServiceServer(s grpc.ServiceRegistrar, srv ObjectServiceServer) {
	s.RegisterService(&objectServiceDesc, srv)
}

var objectServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ObjectServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddObject", Handler: addObjectHandler},
		{MethodName: "RemoveObject", Handler: removeObjectHandler},
		{MethodName: "GetDynamics", Handler: getDynamicsHandler},
		{MethodName: "ChangeDynamics", Handler: changeDynamicsHandler},
		{MethodName: "GetPosition", Handler: getPositionHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "objectapi/messages.go",
}

func addObjectHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AddObjectRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ObjectServiceServer).AddObject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/AddObject"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ObjectServiceServer).AddObject(ctx, req.(*AddObjectRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func removeObjectHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RemoveObjectRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ObjectServiceServer).RemoveObject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/RemoveObject"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ObjectServiceServer).RemoveObject(ctx, req.(*RemoveObjectRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getDynamicsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetDynamicsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ObjectServiceServer).GetDynamics(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetDynamics"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ObjectServiceServer).GetDynamics(ctx, req.(*GetDynamicsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func changeDynamicsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ChangeDynamicsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ObjectServiceServer).ChangeDynamics(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ChangeDynamics"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ObjectServiceServer).ChangeDynamics(ctx, req.(*ChangeDynamicsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getPositionHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPositionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ObjectServiceServer).GetPosition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetPosition"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ObjectServiceServer).GetPosition(ctx, req.(*GetPositionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ObjectServiceClient is the client surface of the object service.
type ObjectServiceClient interface {
	AddObject(ctx context.Context, in *AddObjectRequest, opts ...grpc.CallOption) (*AddObjectResponse, error)
	RemoveObject(ctx context.Context, in *RemoveObjectRequest, opts ...grpc.CallOption) (*RemoveObjectResponse, error)
	GetDynamics(ctx context.Context, in *GetDynamicsRequest, opts ...grpc.CallOption) (*GetDynamicsResponse, error)
	ChangeDynamics(ctx context.Context, in *ChangeDynamicsRequest, opts ...grpc.CallOption) (*ChangeDynamicsResponse, error)
	GetPosition(ctx context.Context, in *GetPositionRequest, opts ...grpc.CallOption) (*GetPositionResponse, error)
}

type objectServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewObjectServiceClient constructs a client that speaks the JSON codec.
func NewObjectServiceClient(cc grpc.ClientConnInterface) ObjectServiceClient {
	return &objectServiceClient{cc: cc}
}

func (c *objectServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *objectServiceClient) AddObject(ctx context.Context, in *AddObjectRequest, opts ...grpc.CallOption) (*AddObjectResponse, error) {
	out := new(AddObjectResponse)
	if err := c.invoke(ctx, "AddObject", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *objectServiceClient) RemoveObject(ctx context.Context, in *RemoveObjectRequest, opts ...grpc.CallOption) (*RemoveObjectResponse, error) {
	out := new(RemoveObjectResponse)
	if err := c.invoke(ctx, "RemoveObject", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *objectServiceClient) GetDynamics(ctx context.Context, in *GetDynamicsRequest, opts ...grpc.CallOption) (*GetDynamicsResponse, error) {
	out := new(GetDynamicsResponse)
	if err := c.invoke(ctx, "GetDynamics", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *objectServiceClient) ChangeDynamics(ctx context.Context, in *ChangeDynamicsRequest, opts ...grpc.CallOption) (*ChangeDynamicsResponse, error) {
	out := new(ChangeDynamicsResponse)
	if err := c.invoke(ctx, "ChangeDynamics", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *objectServiceClient) GetPosition(ctx context.Context, in *GetPositionRequest, opts ...grpc.CallOption) (*GetPositionResponse, error) {
	out := new(GetPositionResponse)
	if err := c.invoke(ctx, "GetPosition", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
