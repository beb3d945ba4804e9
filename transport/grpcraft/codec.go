// Package grpcraft adapts raft.Engine to the network over gRPC. The
// retrieval pack this module was grown from does not include the
// generated protobuf package the teacher's own gRPC plumbing depends on
// (no .proto sources were retrieved, and this module does not invoke
// protoc), so the wire envelope here is a hand-built grpc.ServiceDesc that
// carries gob-encoded raft messages inside
// google.golang.org/protobuf/types/known/wrapperspb.BytesValue — a
// pre-generated proto.Message shipped by the protobuf module itself.
package grpcraft

import (
	"bytes"
	"context"
	"encoding/gob"

	"barge/raft"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// serviceName is the fully qualified gRPC service name used on the wire.
const serviceName = "barge.Raft"

func encodeEnvelope(v interface{}) (*wrapperspb.BytesValue, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return &wrapperspb.BytesValue{Value: buf.Bytes()}, nil
}

func decodeEnvelope(b *wrapperspb.BytesValue, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(b.GetValue())).Decode(v)
}

func appendEntriesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}

	impl := srv.(raft.PeerTransport)

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		var appendReq raft.AppendEntriesRequest
		if err := decodeEnvelope(req.(*wrapperspb.BytesValue), &appendReq); err != nil {
			return nil, err
		}
		resp, err := impl.AppendEntries(ctx, &appendReq)
		if err != nil {
			return nil, err
		}
		return encodeEnvelope(resp)
	}

	if interceptor == nil {
		return handler(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/AppendEntries"}
	return interceptor(ctx, in, info, handler)
}

func requestVoteHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}

	impl := srv.(raft.PeerTransport)

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		var voteReq raft.RequestVoteRequest
		if err := decodeEnvelope(req.(*wrapperspb.BytesValue), &voteReq); err != nil {
			return nil, err
		}
		resp, err := impl.RequestVote(ctx, &voteReq)
		if err != nil {
			return nil, err
		}
		return encodeEnvelope(resp)
	}

	if interceptor == nil {
		return handler(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/RequestVote"}
	return interceptor(ctx, in, info, handler)
}

// serviceDesc mirrors what protoc-gen-go-grpc would emit for a two-method
// Raft service, hand-built for the reason documented in the package
// comment.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*raft.PeerTransport)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AppendEntries", Handler: appendEntriesHandler},
		{MethodName: "RequestVote", Handler: requestVoteHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "grpcraft/raft.proto",
}
