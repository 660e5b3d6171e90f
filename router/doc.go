// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the route table.

Routes use Go 1.22+ method-qualified ServeMux patterns. Every command
route is wrapped with request logging; /ws is not, because the upgrade
hijacks the connection and the hub does its own connection logging.

	mux := router.NewRouter(mgr, h)
	server := http.Server{Handler: middleware.CORS(mux), Addr: ":3319"}

DELETE /session/students/me coexists with DELETE /session/students/{id}:
ServeMux prefers the literal segment, so a student leaving is never routed
as a teacher removal of a student with ID "me".
*/
package router
