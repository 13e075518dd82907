package semconv

const (
	AttrProgram        = "parsecbench.program"
	AttrRuns           = "parsecbench.runs"
	AttrThreadsMin     = "parsecbench.threads.min"
	AttrThreadsMax     = "parsecbench.threads.max"
	AttrBootScript     = "parsecbench.vm.boot_script"
	AttrDisableSMT     = "parsecbench.smt_disabled"
	AttrCapturePerf    = "parsecbench.perf_capture"
	AttrElapsedSeconds = "parsecbench.elapsed_seconds"
)
