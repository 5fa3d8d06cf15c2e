package main

import (
	"k8s.io/klog/v2"
)

// klogLogger routes library logging to klog. Debug messages need -v=2.
type klogLogger struct{}

func (klogLogger) Debug(msg string, keysAndValues ...interface{}) {
	klog.V(2).InfoS(msg, keysAndValues...)
}

func (klogLogger) Info(msg string, keysAndValues ...interface{}) {
	klog.V(1).InfoS(msg, keysAndValues...)
}

func (klogLogger) Error(msg string, keysAndValues ...interface{}) {
	klog.ErrorS(nil, msg, keysAndValues...)
}
