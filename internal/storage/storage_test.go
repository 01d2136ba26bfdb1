package storage

import (
	"bytes"
	"io"
	"testing"
)

func TestMemoryStorageCreateReadWriteRoundTrip(t *testing.T) {
	s := NewMemoryStorage()

	entry, err := s.CreateFile("hello.txt")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	stream, err := entry.Stream()
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if _, err := stream.Write([]byte("hello world")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.FlushFile(entry); err != nil {
		t.Fatalf("FlushFile: %v", err)
	}

	read, err := s.ReadFile("hello.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	rs, err := read.Stream()
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	got, err := io.ReadAll(rs)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, []byte("hello world")) {
		t.Fatalf("content = %q, want %q", got, "hello world")
	}
}

func TestMemoryStorageCreateFileTwiceFails(t *testing.T) {
	s := NewMemoryStorage()
	if _, err := s.CreateFile("x"); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if _, err := s.CreateFile("x"); err != ErrCreateFile {
		t.Fatalf("expected ErrCreateFile, got %v", err)
	}
}

func TestMemoryStorageReadMissingFileFails(t *testing.T) {
	s := NewMemoryStorage()
	if _, err := s.ReadFile("missing"); err == nil {
		t.Fatalf("expected error reading missing file")
	}
}

func TestMemoryStorageRemoveFile(t *testing.T) {
	s := NewMemoryStorage()
	entry, err := s.CreateFile("x")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if err := s.RemoveFile(entry); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if _, err := s.ReadFile("x"); err == nil {
		t.Fatalf("expected removed file to be gone")
	}
}

func TestMemoryStorageFileLen(t *testing.T) {
	s := NewMemoryStorage()
	entry, _ := s.CreateFile("x")
	stream, _ := entry.Stream()
	stream.Write([]byte("1234567890"))
	s.FlushFile(entry)

	read, _ := s.ReadFile("x")
	n, err := s.FileLen(read)
	if err != nil {
		t.Fatalf("FileLen: %v", err)
	}
	if n != 10 {
		t.Fatalf("len = %d, want 10", n)
	}
}

func TestMemoryStorageDirEntryRejectsStreamOps(t *testing.T) {
	s := NewMemoryStorage()
	if err := s.CreateDirAll("bar"); err != nil {
		t.Fatalf("CreateDirAll: %v", err)
	}
	dirEntry, err := s.ReadFile("bar")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !dirEntry.IsDir() {
		t.Fatalf("expected a directory entry")
	}
	if _, err := dirEntry.Stream(); err != ErrFileAccess {
		t.Fatalf("expected ErrFileAccess opening a directory's stream, got %v", err)
	}
}
