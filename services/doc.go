// Package services exposes one cache-aside service per entity kind.
//
// Simple kinds are plain instances of repositorycache.Service listed by
// progeny. Kinds with side effects or extra queries wrap one: comments keep
// their thread's counter in step, pictures and videos create a comment thread,
// the timeline answers OnThisDay requests, user access grants are listed by
// progeny and by user, and progenies are listed by admin e-mail.
package services
