package demos

func init() {
	Register(Demo{
		Name:    "closure-counter",
		Topic:   "fx",
		Summary: "Closure state carried as explicit struct fields.",
		Run:     runClosureCounter,
	})
	Register(Demo{
		Name:    "tasks-vs-microtasks",
		Topic:   "loop",
		Summary: "Sync code, then microtasks, then timers.",
		Run:     runTasksVsMicrotasks,
	})
	Register(Demo{
		Name:    "timers",
		Topic:   "loop",
		Summary: "Timeouts, intervals, clearing and aborting.",
		Run:     runTimers,
	})
	Register(Demo{
		Name:    "deferred",
		Topic:   "promise",
		Summary: "Deferreds settle once and call back asynchronously.",
		Run:     runDeferred,
	})
	Register(Demo{
		Name:    "combinators",
		Topic:   "promise",
		Summary: "All, Race, Any and AllSettled over delayed promises.",
		Run:     runCombinators,
	})
	Register(Demo{
		Name:    "debounce",
		Topic:   "rate",
		Summary: "A burst of calls collapses to one trailing invocation.",
		Run:     runDebounce,
	})
	Register(Demo{
		Name:    "throttle",
		Topic:   "rate",
		Summary: "At most one invocation per window, plus a trailing call.",
		Run:     runThrottle,
	})
	Register(Demo{
		Name:    "emitter",
		Topic:   "emitter",
		Summary: "Listener ordering, once semantics and emit snapshots.",
		Run:     runEmitter,
	})
	Register(Demo{
		Name:    "memoize",
		Topic:   "memo",
		Summary: "Sync and async memoization, dedup and rejection retry.",
		Run:     runMemoize,
	})
	Register(Demo{
		Name:    "lru-cache",
		Topic:   "memo",
		Summary: "Eviction order of a capacity-3 LRU cache.",
		Run:     runLRUCache,
	})
	Register(Demo{
		Name:    "serial-queue",
		Topic:   "pool",
		Summary: "FIFO execution that survives a failing task.",
		Run:     runSerialQueue,
	})
	Register(Demo{
		Name:    "async-pool",
		Topic:   "pool",
		Summary: "Concurrency 2 over 5 tasks, results in input order.",
		Run:     runAsyncPool,
	})
	Register(Demo{
		Name:    "mini-store",
		Topic:   "store",
		Summary: "Dispatch, subscribe, middleware and reentrancy.",
		Run:     runMiniStore,
	})
	Register(Demo{
		Name:    "selector",
		Topic:   "memo",
		Summary: "Derived values recompute only when inputs change.",
		Run:     runSelector,
	})
	Register(Demo{
		Name:    "curry",
		Topic:   "fx",
		Summary: "Currying, partial application and composition.",
		Run:     runCurry,
	})
}
