// Package asyncops implements the asynchronous filesystem operation manager.
//
// Callers describe work with immutable Operation descriptors (one per
// filesystem primitive, plus Batch for an ordered list of them), submit
// them to a Manager, and immediately get back a Handle. A bounded pool of
// workers drains the queue, runs the matching primitive from fsops, and
// commits exactly one terminal Result per task: Success, Error, Timeout,
// or Cancelled.
//
// Guarantees:
//   - Submit never blocks the caller.
//   - A task's terminal result is written exactly once; whichever of
//     {completion, timeout, cancellation} arrives first wins the commit.
//   - Cancelling a task that no worker has claimed yet is guaranteed:
//     the primitive is never invoked. Cancelling a running task is
//     advisory: the in-flight primitive may still finish, but a Batch
//     stops starting new sub-operations.
//   - Batches run their sub-operations sequentially in order on one
//     worker and record every per-item outcome; one failing item does
//     not abort the rest.
//
// Example:
//
//	mgr := asyncops.New(asyncops.DefaultConfig(), logger)
//	defer mgr.Close()
//
//	handle, err := mgr.SubmitTimeout(asyncops.Copy(src, dst), 10*time.Second)
//	if err != nil {
//		return err
//	}
//	res, err := handle.Wait(ctx)
package asyncops
