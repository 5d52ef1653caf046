package wire

import (
	"context"

	"google.golang.org/grpc"

	"servigest/internal/model"
)

const ServiceName = "servigest.v1.ServiGest"

// FullMethod returns the gRPC path of a method, e.g. "/servigest.v1.ServiGest/Login".
func FullMethod(name string) string { return "/" + ServiceName + "/" + name }

type Server interface {
	Login(context.Context, *Credentials) (*AuthReply, error)
	Register(context.Context, *Credentials) (*AuthReply, error)
	Logout(context.Context, *Empty) (*Empty, error)
	CurrentUser(context.Context, *Empty) (*User, error)

	GetService(context.Context, *IDRequest) (*Service, error)
	ListServicesByProvider(context.Context, *IDRequest) (*ServiceList, error)
	ListProviders(context.Context, *ProviderQuery) (*ProviderList, error)
	AddService(context.Context, *Service) (*Service, error)
	UpdateService(context.Context, *Service) (*Service, error)
	DeleteService(context.Context, *IDRequest) (*Empty, error)

	AddAppointment(context.Context, *Appointment) (*Appointment, error)
	ListAppointmentsByClient(context.Context, *IDRequest) (*AppointmentList, error)
	ListAppointmentsByProvider(context.Context, *IDRequest) (*AppointmentList, error)
	UpdateAppointmentStatus(context.Context, *StatusRequest) (*Appointment, error)
}

// method adapts a Server method to a unary grpc.MethodDesc.
func method[Req any, PReq interface {
	*Req
	Message
}, Resp Message](name string, call func(Server, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	full := FullMethod(name)
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, icpt grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(Server)
			if icpt == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			return icpt(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(PReq))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		method("Login", Server.Login),
		method("Register", Server.Register),
		method("Logout", Server.Logout),
		method("CurrentUser", Server.CurrentUser),
		method("GetService", Server.GetService),
		method("ListServicesByProvider", Server.ListServicesByProvider),
		method("ListProviders", Server.ListProviders),
		method("AddService", Server.AddService),
		method("UpdateService", Server.UpdateService),
		method("DeleteService", Server.DeleteService),
		method("AddAppointment", Server.AddAppointment),
		method("ListAppointmentsByClient", Server.ListAppointmentsByClient),
		method("ListAppointmentsByProvider", Server.ListAppointmentsByProvider),
		method("UpdateAppointmentStatus", Server.UpdateAppointmentStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "servigest/v1/servigest.proto",
}

func RegisterServer(s grpc.ServiceRegistrar, srv Server) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the service over any grpc.ClientConnInterface.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any, PResp interface {
	*Resp
	Message
}](ctx context.Context, c *Client, name string, in Message, opts []grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := c.cc.Invoke(ctx, FullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*AuthReply, error) {
	return invoke[AuthReply](ctx, c, "Login", in, opts)
}

func (c *Client) Register(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*AuthReply, error) {
	return invoke[AuthReply](ctx, c, "Register", in, opts)
}

func (c *Client) Logout(ctx context.Context, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c, "Logout", &Empty{}, opts)
	return err
}

func (c *Client) CurrentUser(ctx context.Context, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c, "CurrentUser", &Empty{}, opts)
}

func (c *Client) GetService(ctx context.Context, id string, opts ...grpc.CallOption) (*Service, error) {
	return invoke[Service](ctx, c, "GetService", &IDRequest{ID: id}, opts)
}

func (c *Client) ListServicesByProvider(ctx context.Context, providerID string, opts ...grpc.CallOption) (*ServiceList, error) {
	return invoke[ServiceList](ctx, c, "ListServicesByProvider", &IDRequest{ID: providerID}, opts)
}

func (c *Client) ListProviders(ctx context.Context, all bool, opts ...grpc.CallOption) (*ProviderList, error) {
	return invoke[ProviderList](ctx, c, "ListProviders", &ProviderQuery{All: all}, opts)
}

func (c *Client) AddService(ctx context.Context, in *Service, opts ...grpc.CallOption) (*Service, error) {
	return invoke[Service](ctx, c, "AddService", in, opts)
}

func (c *Client) UpdateService(ctx context.Context, in *Service, opts ...grpc.CallOption) (*Service, error) {
	return invoke[Service](ctx, c, "UpdateService", in, opts)
}

func (c *Client) DeleteService(ctx context.Context, id string, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c, "DeleteService", &IDRequest{ID: id}, opts)
	return err
}

func (c *Client) AddAppointment(ctx context.Context, in *Appointment, opts ...grpc.CallOption) (*Appointment, error) {
	return invoke[Appointment](ctx, c, "AddAppointment", in, opts)
}

func (c *Client) ListAppointmentsByClient(ctx context.Context, clientID string, opts ...grpc.CallOption) (*AppointmentList, error) {
	return invoke[AppointmentList](ctx, c, "ListAppointmentsByClient", &IDRequest{ID: clientID}, opts)
}

func (c *Client) ListAppointmentsByProvider(ctx context.Context, providerID string, opts ...grpc.CallOption) (*AppointmentList, error) {
	return invoke[AppointmentList](ctx, c, "ListAppointmentsByProvider", &IDRequest{ID: providerID}, opts)
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id string, st model.Status, opts ...grpc.CallOption) (*Appointment, error) {
	return invoke[Appointment](ctx, c, "UpdateAppointmentStatus", &StatusRequest{ID: id, Status: st}, opts)
}
