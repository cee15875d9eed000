package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// attachments
	RouteAttachments       = RouteApiV1 + "/attachments"
	RouteAttachment        = RouteAttachments + "/:attachment_id"
	RouteAttachmentOrphans = RouteAttachments + "/orphans"
	RouteRecordAttachments = RouteApiV1 + "/records/:record_type/:record_id/attachments"

	// bulk import
	RouteBulkImport    = RouteAttachments + "/bulk"
	RouteBulkImportJob = RouteBulkImport + "/:job_id"

	// drive oauth
	RouteDriveOAuth          = RouteApiV1 + "/drive/oauth"
	RouteDriveOAuthAuthorize = RouteDriveOAuth + "/authorize"
	RouteDriveOAuthExchange  = RouteDriveOAuth + "/exchange"
	RouteDriveOAuthRevoke    = RouteDriveOAuth + "/revoke"
	RouteDriveOAuthStatus    = RouteDriveOAuth + "/status"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
