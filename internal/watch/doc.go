// Package watch reruns the pipeline when the content tree changes.
//
// Filesystem events are debounced into rebuild requests. Requests go through a channel with a
// buffer of one, so at most one rebuild runs and at most one more is pending no matter how many
// events arrive meanwhile. An optional gocron job adds periodic requests on top.
//
// The pipeline's own writes produce events too. Because a rebuild over an up-to-date tree
// writes nothing, that echo costs one extra rebuild and then settles.
package watch
