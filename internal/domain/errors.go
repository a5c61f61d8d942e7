package domain

import "errors"

var (
	// ErrInvalidRelationshipType 表示写入时使用了未注册的关系类型。
	ErrInvalidRelationshipType = errors.New("invalid relationship type")
	// ErrMissingIdentifier 表示源或目标 GUID 为空。
	ErrMissingIdentifier = errors.New("missing entity identifier")
	// ErrUnknownRelationType 表示查询逆类型时遇到未注册类型，属于配置错误。
	ErrUnknownRelationType = errors.New("unknown relationship type")
)
