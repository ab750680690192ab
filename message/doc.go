// Package message provides the request and response records exchanged with the
// storage service and their canonical binary (protobuf) encoding.
//
// Every record implements [github.com/tarantool/go-vss/marshaller.Marshallable].
package message
