package observability

var ParseLogLevelForTest = parseLogLevel
