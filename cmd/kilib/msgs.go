package main

// Long help texts, kept out of the command definitions for readability.

const rootLong = `kilib routes electronic component assets into your installed KiCad
libraries: symbol libraries (.kicad_sym) are merged entry by entry into an
existing library, footprints (.kicad_mod) and 3D models (.step, .wrl) are
placed into their library directories.

Target libraries are read from KiCad's sym-lib-table and fp-lib-table; 3D
model libraries are discovered from the *.3dshapes directories on the model
search path.`

const importLong = `Import an asset file into a KiCad library.

The file type is derived from the extension:

  .kicad_sym    merge the file's symbols into the target symbol library
  .kicad_mod    copy the footprint into the target footprint library
  .step, .wrl   copy the 3D model into the target's *.3dshapes directory

For symbol merges, --on-conflict decides what happens when an incoming
symbol name already exists in the target library: "reject" (the default)
aborts and lists every conflicting name without touching the destination;
"overwrite" replaces the existing symbols in place.

The target library is looked up by name in the KiCad library tables, e.g.:

  kilib import MyParts.kicad_sym --library Custom
  kilib import R_0402.kicad_mod --library Custom --type footprint`

const libsLong = `List the libraries known to KiCad.

Symbol and footprint libraries come from sym-lib-table and fp-lib-table in
the KiCad preferences directory; 3D model libraries are discovered from
*.3dshapes directories. Use --format yaml for machine-readable output.`

const resolveLong = `Resolve a library URI to an absolute filesystem path.

Placeholder tokens such as ${KICAD9_SYMBOL_DIR} are substituted with the
configured roots, file:// URIs are decoded, and ~ plus environment
variables are expanded. The path is printed without checking that it
exists.`

const configLong = `Print the effective kilib configuration as TOML.

The output merges the built-in defaults, the user configuration file
(<config-dir>/kilib/kilib.toml) and KILIB_* environment variables, and can
be redirected to create a starter configuration file.`

const completionLong = `To load completions:

Bash:
  $ source <(kilib completion bash)

Zsh:
  $ kilib completion zsh > "${fpath[1]}/_kilib"

Fish:
  $ kilib completion fish | source

PowerShell:
  PS> kilib completion powershell | Out-String | Invoke-Expression`
