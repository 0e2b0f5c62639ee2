package types

const ContextUserKey = "user"

const ContextRequestIDKey = "request_id"

const RequestIDHeader = "X-Request-ID"
