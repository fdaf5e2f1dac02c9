package ftplist

import (
	"testing"
)

func TestParseUnix(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		wantKind      EntryKind
		wantName      string
		wantSize      int64
		wantDate      string
		wantPerms     string
		wantSticky    bool
		wantACL       bool
		wantOwner     string
		wantGroup     string
		wantTarget    string
		wantHasTarget bool
		wantPointer   string
	}{
		{
			name:      "directory with year",
			line:      "drwxr-xr-x  10 root   root    4096 Dec 21  2012 usr",
			wantKind:  Directory,
			wantName:  "usr",
			wantSize:  4096,
			wantDate:  "Dec 21 2012",
			wantPerms: "rwxr-xr-x",
			wantOwner: "root",
			wantGroup: "root",
		},
		{
			name:      "no-break space separators",
			line:      "drwxr-xr-x\u00a010 root root 4096 Dec\u00a021\u00a0 2012 usr",
			wantKind:  Directory,
			wantName:  "usr",
			wantSize:  4096,
			wantDate:  "Dec 21 2012",
			wantPerms: "rwxr-xr-x",
			wantOwner: "root",
			wantGroup: "root",
		},
		{
			name:        "no-break space in device numbers",
			line:        "crw-rw-rw-   1 root   tty     5,\u00a0\u2003 0 Nov 24 10:13 tty",
			wantKind:    CharacterDevice,
			wantName:    "tty",
			wantDate:    "Nov 24 10:13",
			wantPerms:   "rw-rw-rw-",
			wantOwner:   "root",
			wantGroup:   "tty",
			wantPointer: "5,0",
		},
		{
			name:      "empty directory",
			line:      "drwxrwxrwx   1 owner   group          0 Aug 31 2012 e-books",
			wantKind:  Directory,
			wantName:  "e-books",
			wantDate:  "Aug 31 2012",
			wantPerms: "rwxrwxrwx",
			wantOwner: "owner",
			wantGroup: "group",
		},
		{
			name:      "regular file",
			line:      "-rw-rw-rw-   1 owner   group    7045120 Sep 02  2012 music.mp3",
			wantKind:  File,
			wantName:  "music.mp3",
			wantSize:  7045120,
			wantDate:  "Sep 02 2012",
			wantPerms: "rw-rw-rw-",
			wantOwner: "owner",
			wantGroup: "group",
		},
		{
			name:      "numeric owner",
			line:      "-rw-rw-rw-   1 1234   group    7045120 Sep 02  2012 music.mp3",
			wantKind:  File,
			wantName:  "music.mp3",
			wantSize:  7045120,
			wantDate:  "Sep 02 2012",
			wantPerms: "rw-rw-rw-",
			wantOwner: "1234",
			wantGroup: "group",
		},
		{
			name:      "numeric group",
			line:      "-rw-rw-rw-   1 owner   1234    7045120 Sep 02  2012 music.mp3",
			wantKind:  File,
			wantName:  "music.mp3",
			wantSize:  7045120,
			wantDate:  "Sep 02 2012",
			wantPerms: "rw-rw-rw-",
			wantOwner: "owner",
			wantGroup: "1234",
		},
		{
			name:      "space in group",
			line:      "-rwxrwxr-x    1 1317       Domain Use                3065 May  4 11:01 xmlrpc.php",
			wantKind:  File,
			wantName:  "xmlrpc.php",
			wantSize:  3065,
			wantDate:  "May 4 11:01",
			wantPerms: "rwxrwxr-x",
			wantOwner: "1317",
			wantGroup: "Domain Use",
		},
		{
			name:      "double space in group",
			line:      "-rwxrwxr-x    1 1317       Domain  Use                3065 May  4 11:01 xmlrpc.php",
			wantKind:  File,
			wantName:  "xmlrpc.php",
			wantSize:  3065,
			wantDate:  "May 4 11:01",
			wantPerms: "rwxrwxr-x",
			wantOwner: "1317",
			wantGroup: "Domain  Use",
		},
		{
			name:      "space in owner",
			line:      "-rwxrwxr-x    1 Domain Use       33                3065 May  4 11:01 xmlrpc.php",
			wantKind:  File,
			wantName:  "xmlrpc.php",
			wantSize:  3065,
			wantDate:  "May 4 11:01",
			wantPerms: "rwxrwxr-x",
			wantOwner: "Domain Use",
			wantGroup: "33",
		},
		{
			name:      "double space in owner",
			line:      "-rwxrwxr-x    1 Domain  Use       33                3065 May  4 11:01 xmlrpc.php",
			wantKind:  File,
			wantName:  "xmlrpc.php",
			wantSize:  3065,
			wantDate:  "May 4 11:01",
			wantPerms: "rwxrwxr-x",
			wantOwner: "Domain  Use",
			wantGroup: "33",
		},
		{
			name:      "space in owner and group",
			line:      "drwxrwxr-x    7 Domain Use       Domain Use        208 May  5 11:28 wp-content",
			wantKind:  Directory,
			wantName:  "wp-content",
			wantSize:  208,
			wantDate:  "May 5 11:28",
			wantPerms: "rwxrwxr-x",
			wantOwner: "Domain Use",
			wantGroup: "Domain Use",
		},
		{
			name:      "numeric owner and hyphenated group",
			line:      "-rw-------    1 33         www-data           14 May 15 01:52 .ftpquota",
			wantKind:  File,
			wantName:  ".ftpquota",
			wantSize:  14,
			wantDate:  "May 15 01:52",
			wantPerms: "rw-------",
			wantOwner: "33",
			wantGroup: "www-data",
		},
		{
			name:      "hyphenated owner and numeric group",
			line:      "-rw-------    1 www-data         33           14 May 15 01:52 .ftpquota",
			wantKind:  File,
			wantName:  ".ftpquota",
			wantSize:  14,
			wantDate:  "May 15 01:52",
			wantPerms: "rw-------",
			wantOwner: "www-data",
			wantGroup: "33",
		},
		{
			name:      "active directory group with backslashes",
			line:      `-rw-r--r--   1 300794   AD\\Domain Users     6148 Sep 19 06:17 .DS_Store`,
			wantKind:  File,
			wantName:  ".DS_Store",
			wantSize:  6148,
			wantDate:  "Sep 19 06:17",
			wantPerms: "rw-r--r--",
			wantOwner: "300794",
			wantGroup: `AD\\Domain Users`,
		},
		{
			name:      "acl marker",
			line:      "-rw-rw-rw-+   1 owner   group    7045120 Sep 02  2012 music.mp3",
			wantKind:  File,
			wantName:  "music.mp3",
			wantSize:  7045120,
			wantDate:  "Sep 02 2012",
			wantPerms: "rw-rw-rw-",
			wantACL:   true,
			wantOwner: "owner",
			wantGroup: "group",
		},
		{
			name:      "macos extended attribute marker is not an acl",
			line:      "-rw-rw-rw-@   1 owner   group    7045120 Sep 02  2012 music.mp3",
			wantKind:  File,
			wantName:  "music.mp3",
			wantSize:  7045120,
			wantDate:  "Sep 02 2012",
			wantPerms: "rw-rw-rw-",
			wantOwner: "owner",
			wantGroup: "group",
		},
		{
			name:       "sticky with execute",
			line:       "drwxrwxrwt   7 root   root    4096 May 19 2012 tmp",
			wantKind:   Directory,
			wantName:   "tmp",
			wantSize:   4096,
			wantDate:   "May 19 2012",
			wantPerms:  "rwxrwxrwx",
			wantSticky: true,
			wantOwner:  "root",
			wantGroup:  "root",
		},
		{
			name:       "sticky with execute only for others",
			line:       "drwxrwx--t   7 root   root    4096 May 19 2012 tmp",
			wantKind:   Directory,
			wantName:   "tmp",
			wantSize:   4096,
			wantDate:   "May 19 2012",
			wantPerms:  "rwxrwx--x",
			wantSticky: true,
			wantOwner:  "root",
			wantGroup:  "root",
		},
		{
			name:       "sticky without execute",
			line:       "drwxrwxrwT   7 root   root    4096 May 19 2012 tmp",
			wantKind:   Directory,
			wantName:   "tmp",
			wantSize:   4096,
			wantDate:   "May 19 2012",
			wantPerms:  "rwxrwxrw-",
			wantSticky: true,
			wantOwner:  "root",
			wantGroup:  "root",
		},
		{
			name:       "sticky without any execute for others",
			line:       "drwxrwx--T   7 root   root    4096 May 19 2012 tmp",
			wantKind:   Directory,
			wantName:   "tmp",
			wantSize:   4096,
			wantDate:   "May 19 2012",
			wantPerms:  "rwxrwx---",
			wantSticky: true,
			wantOwner:  "root",
			wantGroup:  "root",
		},
		{
			name:      "setgid without execute passes through",
			line:      "drwxr-S---    3 105207   501            18 Jul 04  2017 .pki",
			wantKind:  Directory,
			wantName:  ".pki",
			wantSize:  18,
			wantDate:  "Jul 04 2017",
			wantPerms: "rwxr-S---",
			wantOwner: "105207",
			wantGroup: "501",
		},
		{
			name:      "setgid passes through",
			line:      "drwxr-s---    3 105207   501            18 Jul 04  2017 .pki",
			wantKind:  Directory,
			wantName:  ".pki",
			wantSize:  18,
			wantDate:  "Jul 04 2017",
			wantPerms: "rwxr-s---",
			wantOwner: "105207",
			wantGroup: "501",
		},
		{
			name:      "mandatory lock passes through",
			line:      "drwx--L---    3 105207   501            18 Jul 04  2017 .pki",
			wantKind:  Directory,
			wantName:  ".pki",
			wantSize:  18,
			wantDate:  "Jul 04 2017",
			wantPerms: "rwx--L---",
			wantOwner: "105207",
			wantGroup: "501",
		},
		{
			name:      "block device with plain size",
			line:      "brwx-w----    3 105207   501            18 Jul 04  2017 .pki",
			wantKind:  BlockDevice,
			wantName:  ".pki",
			wantSize:  18,
			wantDate:  "Jul 04 2017",
			wantPerms: "rwx-w----",
			wantOwner: "105207",
			wantGroup: "501",
		},
		{
			name:        "block device with pointer",
			line:        "brw-rw----  1 root disk    8,   0 Nov 24 10:13 sda",
			wantKind:    BlockDevice,
			wantName:    "sda",
			wantDate:    "Nov 24 10:13",
			wantPerms:   "rw-rw----",
			wantOwner:   "root",
			wantGroup:   "disk",
			wantPointer: "8,0",
		},
		{
			name:      "character device without pointer",
			line:      "crw-rw----  1 root tty       0 Apr  1 20:30 vcs",
			wantKind:  CharacterDevice,
			wantName:  "vcs",
			wantDate:  "Apr 1 20:30",
			wantPerms: "rw-rw----",
			wantOwner: "root",
			wantGroup: "tty",
		},
		{
			name:        "character device with pointer",
			line:        "crw-rw---- 1 root tty       7, 134 Apr  1 20:30 vcsa6",
			wantKind:    CharacterDevice,
			wantName:    "vcsa6",
			wantDate:    "Apr 1 20:30",
			wantPerms:   "rw-rw----",
			wantOwner:   "root",
			wantGroup:   "tty",
			wantPointer: "7,134",
		},
		{
			name:        "character device with padded pointer",
			line:        "crw-rw----  1 root tty       7,   0 Apr  1 20:30 vcs",
			wantKind:    CharacterDevice,
			wantName:    "vcs",
			wantDate:    "Apr 1 20:30",
			wantPerms:   "rw-rw----",
			wantOwner:   "root",
			wantGroup:   "tty",
			wantPointer: "7,0",
		},
		{
			name:      "named pipe",
			line:      "prwx-w----    3 105207   501            18 Jul 04  2017 .pki",
			wantKind:  Pipe,
			wantName:  ".pki",
			wantSize:  18,
			wantDate:  "Jul 04 2017",
			wantPerms: "rwx-w----",
			wantOwner: "105207",
			wantGroup: "501",
		},
		{
			name:      "socket",
			line:      "srwx-w----    3 105207   501            18 Jul 04  2017 .pki",
			wantKind:  Socket,
			wantName:  ".pki",
			wantSize:  18,
			wantDate:  "Jul 04 2017",
			wantPerms: "rwx-w----",
			wantOwner: "105207",
			wantGroup: "501",
		},
		{
			name:          "symlink",
			line:          "lrwxrwxrwx 1 root root 51 Apr  4 23:57 www.nodeftp.github -> /etc/nginx/sites-available/www.nodeftp.github",
			wantKind:      Symlink,
			wantName:      "www.nodeftp.github",
			wantSize:      51,
			wantDate:      "Apr 4 23:57",
			wantPerms:     "rwxrwxrwx",
			wantOwner:     "root",
			wantGroup:     "root",
			wantTarget:    "/etc/nginx/sites-available/www.nodeftp.github",
			wantHasTarget: true,
		},
		{
			name:          "symlink with spaces in target",
			line:          "lrwxrwxrwx   1 root  root        25 Dec 20 10:30 docs -> /home/user/My Documents",
			wantKind:      Symlink,
			wantName:      "docs",
			wantSize:      25,
			wantDate:      "Dec 20 10:30",
			wantPerms:     "rwxrwxrwx",
			wantOwner:     "root",
			wantGroup:     "root",
			wantTarget:    "/home/user/My Documents",
			wantHasTarget: true,
		},
		{
			name:      "symlink without arrow",
			line:      "lrwxrwxrwx   1 root  root        11 Dec 20 10:30 dangling",
			wantKind:  Symlink,
			wantName:  "dangling",
			wantSize:  11,
			wantDate:  "Dec 20 10:30",
			wantPerms: "rwxrwxrwx",
			wantOwner: "root",
			wantGroup: "root",
		},
		{
			name:      "arrow in a regular file name is not split",
			line:      "-rw-r--r--   1 root  root        11 Dec 20 10:30 a -> b",
			wantKind:  File,
			wantName:  "a -> b",
			wantSize:  11,
			wantDate:  "Dec 20 10:30",
			wantPerms: "rw-r--r--",
			wantOwner: "root",
			wantGroup: "root",
		},
		{
			name:      "name with spaces and brackets",
			line:      "drwxr-xr-x  10 root   root    4096 Dec 21  2012 1.1 Header [13]",
			wantKind:  Directory,
			wantName:  "1.1 Header [13]",
			wantSize:  4096,
			wantDate:  "Dec 21 2012",
			wantPerms: "rwxr-xr-x",
			wantOwner: "root",
			wantGroup: "root",
		},
		{
			name:      "iis unix-style directory",
			line:      "drwxrwxrwx   1 owner    group               0 Aug 22 14:05 Name []",
			wantKind:  Directory,
			wantName:  "Name []",
			wantDate:  "Aug 22 14:05",
			wantPerms: "rwxrwxrwx",
			wantOwner: "owner",
			wantGroup: "group",
		},
		{
			name:      "iis unix-style file",
			line:      "-rwxrwxrwx   1 owner    group           99710 Aug 22 12:59 iisstart.png",
			wantKind:  File,
			wantName:  "iisstart.png",
			wantSize:  99710,
			wantDate:  "Aug 22 12:59",
			wantPerms: "rwxrwxrwx",
			wantOwner: "owner",
			wantGroup: "group",
		},
		{
			name:      "unmapped type character is unknown",
			line:      "Srw-r--r--   1 root  root        11 Dec 20 10:30 special",
			wantKind:  Unknown,
			wantName:  "special",
			wantSize:  11,
			wantDate:  "Dec 20 10:30",
			wantPerms: "rw-r--r--",
			wantOwner: "root",
			wantGroup: "root",
		},
		{
			name:      "size too large for int64 falls back to zero",
			line:      "-rw-r--r--   1 root  root  99999999999999999999 Dec 20 10:30 huge",
			wantKind:  File,
			wantName:  "huge",
			wantDate:  "Dec 20 10:30",
			wantPerms: "rw-r--r--",
			wantOwner: "root",
			wantGroup: "root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := ParseUnix(tt.line)
			if !ok {
				t.Fatalf("ParseUnix(%q) did not match", tt.line)
			}

			if e.Kind() != tt.wantKind {
				t.Errorf("Kind = %v, want %v", e.Kind(), tt.wantKind)
			}
			if e.Name() != tt.wantName {
				t.Errorf("Name = %q, want %q", e.Name(), tt.wantName)
			}
			if e.Size() != tt.wantSize {
				t.Errorf("Size = %d, want %d", e.Size(), tt.wantSize)
			}
			if e.DateText() != tt.wantDate {
				t.Errorf("DateText = %q, want %q", e.DateText(), tt.wantDate)
			}
			if got := e.Permissions().String(); got != tt.wantPerms {
				t.Errorf("Permissions = %q, want %q", got, tt.wantPerms)
			}
			if len(e.Permissions()) != 9 {
				t.Errorf("Permissions length = %d, want 9", len(e.Permissions()))
			}
			if e.Sticky() != tt.wantSticky {
				t.Errorf("Sticky = %v, want %v", e.Sticky(), tt.wantSticky)
			}
			if e.ACL() != tt.wantACL {
				t.Errorf("ACL = %v, want %v", e.ACL(), tt.wantACL)
			}
			if e.Owner() != tt.wantOwner {
				t.Errorf("Owner = %q, want %q", e.Owner(), tt.wantOwner)
			}
			if e.Group() != tt.wantGroup {
				t.Errorf("Group = %q, want %q", e.Group(), tt.wantGroup)
			}

			target, hasTarget := e.Target()
			if hasTarget != tt.wantHasTarget || target != tt.wantTarget {
				t.Errorf("Target = (%q, %v), want (%q, %v)", target, hasTarget, tt.wantTarget, tt.wantHasTarget)
			}

			pointer, hasPointer := e.Pointer()
			if hasPointer != (tt.wantPointer != "") || pointer != tt.wantPointer {
				t.Errorf("Pointer = (%q, %v), want %q", pointer, hasPointer, tt.wantPointer)
			}
			if hasPointer && e.Size() != 0 {
				t.Errorf("Size = %d with pointer present, want 0", e.Size())
			}
		})
	}
}

func TestParseUnixNoMatch(t *testing.T) {
	lines := []string{
		"",
		"total 24",
		"   ",
		// No group column.
		"-rw-r--r--   1 user     4096 Dec 20 10:30 config.txt",
		// Numeric permissions.
		"644   1 user  group     4096 Dec 20 10:30 file.txt",
		// Permission token too short.
		"drwxr-xr  2 root root 4096 Dec 20 10:30 short",
		// Invalid permission character.
		"drwxrwxrwq   7 root   root    4096 May 19 2012 tmp",
		// Leading whitespace.
		" drwxr-xr-x  10 root   root    4096 Dec 21  2012 usr",
		// Missing name.
		"drwxr-xr-x  10 root   root    4096 Dec 21  2012",
		"08-22-18  02:05PM       <DIR>          Test",
	}

	for _, line := range lines {
		if e, ok := ParseUnix(line); ok {
			t.Errorf("ParseUnix(%q) = %+v, want no match", line, e)
		}
	}
}

func TestFoldSticky(t *testing.T) {
	tests := []struct {
		in         string
		wantSticky bool
		wantPerms  string
	}{
		{"rwxrwxrwt", true, "rwxrwxrwx"},
		{"rwxrwxrwT", true, "rwxrwxrw-"},
		{"rwxr-x--t", true, "rwxr-x--x"},
		{"------r-T", true, "------r--"},
		{"rwxrwxrwx", false, "rwxrwxrwx"},
		{"rwsr-sr-x", false, "rwsr-sr-x"},
		{"rwx--L---", false, "rwx--L---"},
		{"rw-rw-rwS", false, "rw-rw-rwS"},
	}

	for _, tt := range tests {
		sticky, perms := foldSticky(tt.in)
		if sticky != tt.wantSticky || perms != tt.wantPerms {
			t.Errorf("foldSticky(%q) = (%v, %q), want (%v, %q)", tt.in, sticky, perms, tt.wantSticky, tt.wantPerms)
		}
	}
}

func TestParseUnixPointerPrecedence(t *testing.T) {
	for _, size := range []string{"0,0", "8, 0", "8,   0", "253,  17", "1,"} {
		line := "brw-rw----  1 root disk    " + size + " Nov 24 10:13 dev"
		e, ok := ParseUnix(line)
		if !ok {
			t.Fatalf("ParseUnix(%q) did not match", line)
		}
		pointer, hasPointer := e.Pointer()
		if !hasPointer {
			t.Fatalf("%q: no pointer", size)
		}
		want := ""
		for _, r := range size {
			if r != ' ' {
				want += string(r)
			}
		}
		if pointer != want {
			t.Errorf("%q: Pointer = %q, want %q", size, pointer, want)
		}
		if e.Size() != 0 {
			t.Errorf("%q: Size = %d, want 0", size, e.Size())
		}
	}
}
