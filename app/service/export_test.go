package service

var DummyPasswordHash = dummyPasswordHash
