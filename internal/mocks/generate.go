// Package mocks provides mock implementations for testing the report pipeline.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the collaborator interfaces in internal/core. The mocks are generated using
// go:generate directives and provide a fluent API for setting up test
// expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockProcessRepository(ctrl)
//	mockRepo.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Return(records, nil)
package mocks

// Generate mock for ProcessRepository interface from internal/core package.
// This creates MockProcessRepository with methods for all ProcessRepository interface methods:
// ListRecent, ClientNamesByAPIKey
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=process_repository_mock.go github.com/perceptionlabs/procreport/internal/core ProcessRepository

// Generate mock for LogRetriever interface from internal/core package.
// This creates MockLogRetriever with methods for all LogRetriever interface methods:
// FailedProcessLogs
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=log_retriever_mock.go github.com/perceptionlabs/procreport/internal/core LogRetriever

// Generate mock for VideoFinder interface from internal/core package.
// This creates MockVideoFinder with methods for all VideoFinder interface methods:
// FindProcessVideo
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=video_finder_mock.go github.com/perceptionlabs/procreport/internal/core VideoFinder

// Generate mock for MailSender interface from internal/core package.
// This creates MockMailSender with methods for all MailSender interface methods:
// Send
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=mail_sender_mock.go github.com/perceptionlabs/procreport/internal/core MailSender
