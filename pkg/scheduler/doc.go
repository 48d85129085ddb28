// Package scheduler runs external processes concurrently and collects their
// results without ever blocking on a single one.
//
// Submit starts a process right away and queues a Handle for it. Drain
// walks the queue round-robin, asking each handle whether its process has
// exited. Finished handles produce a JobResult; unfinished ones go back to
// the end of the queue. When a whole pass finds nothing finished, Drain
// sleeps for the poll interval before trying again. Results come back in
// the order completions were discovered.
//
// A non-zero exit status is data, not an error: it is recorded on the
// JobResult and counted by Summarize. Only a failure to start a process is
// reported as an error, by Submit.
package scheduler
