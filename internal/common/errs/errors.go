package errs

import "errors"

var (
	ErrModeFlag       = errors.New("mode flag is required")
	ErrUnknownService = errors.New("unknown service, use --help to see valid modes")

	ErrConfigInvalid = errors.New("invalid config")
	ErrDBConn        = errors.New("db connection failure")
	ErrRMQConn       = errors.New("rabbitmq connection failure")
	ErrRMQNack       = errors.New("publish NACK from broker")
)
