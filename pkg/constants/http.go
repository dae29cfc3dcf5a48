// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// HTTP header constants
const (
	// AuthorizationHeader is the header name for the authorization
	AuthorizationHeader = "Authorization"

	// ContentTypeHeader is the header name for the content type
	ContentTypeHeader = "Content-Type"

	// AcceptHeader is the header name for the accepted response type
	AcceptHeader = "Accept"

	// NotionVersionHeader pins the Notion API version
	NotionVersionHeader = "Notion-Version"

	// AnyListAPIVersionHeader pins the AnyList API version
	AnyListAPIVersionHeader = "X-AnyLeaf-API-Version"

	// AnyListClientIdentifierHeader identifies this client to AnyList
	AnyListClientIdentifierHeader = "X-AnyLeaf-Client-Identifier"
)

// Content types
const (
	ContentTypeJSON     = "application/json"
	ContentTypeProtobuf = "application/x-protobuf"

	// GitHubDispatchAccept is the media type accepted by the repository dispatch endpoint
	GitHubDispatchAccept = "application/vnd.github.everest-preview+json"
)
